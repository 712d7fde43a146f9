// Package middleware provides HTTP middleware for the web server.
//
// The router in internal/web mounts these alongside chi's own middleware.
// ClientIP is shared by Logger and RateLimit so both see the same address
// for a request.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/assort/internal/logging"
)

// Logger is an HTTP middleware that logs one structured entry per request.
//
// It captures timing, status and response size after the handler returns.
// Entries are written through logging.FromContext, so they carry the
// request_id set by chi's RequestID middleware when that runs first.
//
// Log fields:
//   - method, path, query: request line
//   - status: HTTP response status code
//   - bytes: response body size
//   - duration_ms: processing time in milliseconds
//   - ip: client address after TrustedRealIP
//   - user_agent: client user agent string
//
// Server errors are logged at error level, client errors at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		switch {
		case ww.status >= 500:
			level = slog.LevelError
		case ww.status >= 400:
			level = slog.LevelWarn
		}

		logging.FromContext(r.Context()).Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.status,
			"bytes", ww.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", ClientIP(r),
			"user_agent", r.UserAgent(),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status and size.
// Only the first WriteHeader call is honoured, matching net/http.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController, so
// Flush and deadline control still reach the real connection.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
