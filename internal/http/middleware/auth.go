package middlewarex

import (
	"net/http"
	"strings"

	"backoffice/internal/auth"
)

// JWTAuth verifies the bearer token and puts the actor on the request
// context. No token, no access; role checks happen inside the services.
func JWTAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}

			actor, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
