// Package middleware holds the cross-cutting HTTP middleware: admin
// authentication and request metrics.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth guards administrative routes with a shared token header.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "no autorizado"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
