// Package logging provides structured logging configuration using log/slog.
//
// Request-scoped loggers pick up the request ID stored by chi's RequestID
// middleware, so every entry written while serving one request carries the
// same request_id and can be correlated.
//
// The server installs the default logger once at startup with Setup. The
// catalogctl CLI builds its own with New so that log output goes to the
// command's stderr and never mixes with exported data on stdout.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup installs the default slog logger writing to stdout.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Use "json" when logs are shipped to a collector that parses them.
// Use "text" for local development.
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w with the same level and format rules
// as Setup. It does not touch the default logger.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name to slog.Level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext returns the default logger, tagged with request_id when ctx
// carries one.
//
// Outside a request (startup, the reload watcher, the CLI) the context has
// no request ID and the default logger is returned unchanged.
//
// Usage:
//
//	func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
//	    logging.FromContext(r.Context()).Info("rendering view", "version", v)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	return logger
}

// WithFields returns a request-scoped logger with additional fields.
//
// Use it when several entries for one operation share the same context,
// so the fields are attached once instead of repeated at every call.
//
// Usage:
//
//	logger := logging.WithFields(r.Context(),
//	    "format", format,
//	    "mode", s.exporter.Mode(),
//	)
//	logger.Debug("export not modified")
//	// ... later ...
//	logger.Info("catalog exported", "bytes", n)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
