// Package admin is the back-office: login, dish management, the polled
// order view with optimistic status transitions, and daily reports.
package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"sagra/localstore"
	"sagra/upstream"
	"sagra/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

type AuthHandlers struct {
	api   *upstream.Client
	local *localstore.Store
}

func NewAuthHandlers(api *upstream.Client, local *localstore.Store) *AuthHandlers {
	return &AuthHandlers{api: api, local: local}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// token belongs to the upstream and is never validated here, only
// surfaced so the UI can show when the session ends.
func tokenExpiry(token string) *time.Time {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	t := claims.ExpiresAt.Time
	return &t
}

// Login proxies the credentials upstream and persists the returned
// access token for later admin calls.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" {
		input.Username = "admin"
	}
	if input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Password is required")
		return
	}

	token, err := h.api.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		log.Println("Login upstream error:", err)
		utils.RespondWithError(w, http.StatusUnauthorized, "Password errata. Riprova.")
		return
	}

	if err := h.local.Put(localstore.KeyToken, token); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store token")
		return
	}

	resp := utils.M{"access_token": token}
	if exp := tokenExpiry(token); exp != nil {
		resp["expiresAt"] = exp.Format(time.RFC3339)
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// Logout drops the stored token. Nothing is revoked upstream.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.local.Delete(localstore.KeyToken); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
