package middleware

import (
	"net/http"

	"github.com/JonMunkholm/assort/internal/logging"
	"github.com/JonMunkholm/assort/internal/ratelimit"
)

// RateLimit rejects requests from clients that exhausted their token bucket.
// Rejections are handed to onLimited, which writes the response.
func RateLimit(limiter *ratelimit.KeyedRateLimiter, onLimited http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !limiter.Allow(ip) {
				logging.FromContext(r.Context()).Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				onLimited(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
