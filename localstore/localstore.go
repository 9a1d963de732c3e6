// Package localstore is the durable client-side state of the storefront:
// a JSON document per key under a state directory, written synchronously
// after every mutation and read back once at startup. It is a mirror of
// in-memory state, never the authority.
package localstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	KeyCart      = "cart"
	KeyToken     = "token"
	KeyLastOrder = "lastOrder"
	KeyDishes    = "dishes"
	KeyOrders    = "orders"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	// keys are fixed identifiers; strip separators anyway
	key = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, key+".json")
}

// Put writes v as JSON under key. The write goes to a temp file first and
// is renamed into place so readers never observe a partial document.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

// Get reads key into v. It returns false when the key has never been
// written or its content does not parse; a corrupt mirror is the same as
// an absent one.
func (s *Store) Get(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

// GetString is Get for plain string values such as the bearer token.
func (s *Store) GetString(key string) string {
	var v string
	if !s.Get(key, &v) {
		return ""
	}
	return v
}

// Token returns the stored bearer token, satisfying the token source the
// upstream client expects. Empty when no admin is logged in.
func (s *Store) Token() string {
	return s.GetString(KeyToken)
}

func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
