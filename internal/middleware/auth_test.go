package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/profile-booster/account-service/internal/token"
	"github.com/stretchr/testify/require"
)

func authHandler(t *testing.T, tm *token.Manager) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, int64(7), identity.UserID)
		require.Equal(t, "alice", identity.Username)
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(tm)(next)
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	h := authHandler(t, token.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "No token provided")
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	h := authHandler(t, token.NewManager("test-secret"))

	for _, header := range []string{"Bearer garbage", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.NotEqual(t, http.StatusOK, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	signed, err := token.NewManager("other-secret").Sign(7, "alice")
	require.NoError(t, err)

	h := authHandler(t, token.NewManager("test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tm := token.NewManager("test-secret")
	signed, err := tm.Sign(7, "alice")
	require.NoError(t, err)

	h := authHandler(t, tm)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
