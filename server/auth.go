package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "guidant"
	keyringUser    = "server-token"
)

// ErrNoToken is returned when no server token has been stored yet.
var ErrNoToken = errors.New("no server token stored, run 'server token' first")

// LoadToken reads the server token from the OS keyring.
func LoadToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	return token, err
}

func StoreToken(token string) error {
	return keyring.Set(keyringService, keyringUser, token)
}

func DeleteToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoToken
	}
	return err
}

// authMiddleware requires "Authorization: Bearer <token>" on every route
// but the banner. Browsers cannot set headers on WebSocket upgrades, so
// a "token" query parameter is accepted as well.
func authMiddleware(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		var presented string
		if header := r.Header.Get("Authorization"); header != "" {
			scheme, credentials, found := strings.Cut(header, " ")
			if found && strings.EqualFold(scheme, "Bearer") {
				presented = credentials
			}
		} else {
			presented = r.URL.Query().Get("token")
		}

		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
