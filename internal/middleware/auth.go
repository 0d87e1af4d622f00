package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/profile-booster/account-service/internal/token"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID   int64
	Username string
}

// AuthMiddleware verifies the bearer token and attaches the caller identity
// to the request context. Requests without a token get 401, requests with a
// bad or expired token get 403.
func AuthMiddleware(tm *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			bearer, ok := strings.CutPrefix(authz, "Bearer ")
			if authz == "" || !ok || bearer == "" {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := tm.Verify(bearer)
			if err != nil {
				writeError(w, http.StatusForbidden, "Invalid or expired token.")
				return
			}

			identity := Identity{UserID: claims.UserID, Username: claims.Username}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity attached by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
