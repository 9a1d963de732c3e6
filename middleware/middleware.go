package middleware

import (
	"context"
	"net/http"
	"strings"

	"sagra/globals"
	"sagra/localstore"

	"github.com/julienschmidt/httprouter"
)

// RequireToken gates admin routes. The token is not verified here; it
// belongs to the upstream, which rejects stale or forged ones. A request
// may carry its own bearer, otherwise the stored login token is used.
func RequireToken(local *localstore.Store, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := bearerFromHeader(r)
		if token == "" {
			token = local.Token()
		}
		if token == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), globals.TokenKey, token)
		next(w, r.WithContext(ctx), ps)
	}
}

func bearerFromHeader(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
