package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

type bucket struct {
	windowStart time.Time
	count       int
}

// RateLimiter counts requests per client IP over a fixed window and rejects
// clients that exceed the limit before the window resets.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one request for the given client and reports whether it is
// within the limit. The read-modify-write on the bucket is atomic per call.
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[clientIP]
	if !ok || now.Sub(b.windowStart) >= l.window {
		b = &bucket{windowStart: now}
		l.buckets[clientIP] = b
	}
	b.count++
	return b.count <= l.limit
}

// Evict removes buckets whose window has lapsed to bound memory use.
func (l *RateLimiter) Evict() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, ip)
		}
	}
}

// Middleware applies the limiter to every request, keyed by client IP.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
