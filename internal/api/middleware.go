// Package api implements the preview REST API using chi.
package api

import (
	"net/http"
	"strings"
)

type ctxKey int

const authedKey ctxKey = 0

// AuthMiddleware returns middleware that validates a Bearer token.
// If enabled is false, all requests pass through and count as
// authenticated. If enabled is true, read endpoints stay public but the
// request is marked authenticated only when it carries a valid
// "Authorization: Bearer <token>" header; draft visibility keys off that
// mark.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authed := !enabled
			if enabled {
				auth := r.Header.Get("Authorization")
				authed = strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == token
			}
			next.ServeHTTP(w, r.WithContext(withAuthed(r.Context(), authed)))
		})
	}
}
