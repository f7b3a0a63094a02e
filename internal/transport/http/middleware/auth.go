package middleware

import (
	"context"
	"net/http"
	"strings"

	"dataprotection/internal/domain/auth"
	"dataprotection/internal/requestctx"
)

type Authenticator interface {
	Authenticate(token string) (auth.UserContext, error)
}

// Auth attaches the operator to the context when a valid bearer token is
// present. Requests without one pass through; RequirePermission rejects them.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || authenticator == nil {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authenticator.Authenticate(parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestctx.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	return requestctx.GetUser(ctx)
}
