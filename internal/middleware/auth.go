package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"solo-skies/skyledger/internal/auth"
)

// AuthMiddleware authenticates every request with a bearer JWT whose
// subject is the caller's payment account id. Ownership decisions
// happen later, at the admin gate; this layer only establishes who
// the caller is.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := &auth.TokenClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
				return
			}
			if claims.Subject == "" {
				http.Error(w, "Unauthorized. Token has no subject", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
