package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	l := NewRateLimiter(3, time.Minute)

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	// Other clients have their own bucket
	require.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	now := time.Now()
	l := NewRateLimiter(2, 15*time.Minute)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	// Once the window elapses the counter starts over
	now = now.Add(15 * time.Minute)
	require.True(t, l.Allow("10.0.0.1"))
}

func TestRateLimiterEvict(t *testing.T) {
	now := time.Now()
	l := NewRateLimiter(100, 15*time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	require.Len(t, l.buckets, 2)

	l.Evict()
	require.Len(t, l.buckets, 2)

	now = now.Add(15 * time.Minute)
	l.Evict()
	require.Empty(t, l.buckets)
}

func TestRateLimiterMiddleware(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := l.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "Too many requests")

	// Port changes must not open a fresh bucket
	req.RemoteAddr = "10.0.0.1:54322"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
