package middleware

import (
	"context"
	"net/http"
	"strings"

	"nocman/internal/domain/auth"
	"nocman/internal/transport/http/api"
)

type ctxKey string

const ctxKeyAdmin ctxKey = "admin"

type AdminContext struct {
	ID    int64
	Email string
}

// Auth parses a bearer token when present and attaches the admin identity to
// the context. Invalid or missing tokens pass through anonymously; access
// control happens in RequireAdmin.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, AdminContext{
				ID:    claims.AdminID,
				Email: claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests that did not authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetAdmin(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetAdmin(ctx context.Context) (AdminContext, bool) {
	admin, ok := ctx.Value(ctxKeyAdmin).(AdminContext)
	return admin, ok
}
