// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Export   ExportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envDefault:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
}

// CatalogConfig selects where products are loaded from.
type CatalogConfig struct {
	// Source is one of: bundled, file, postgres (default: bundled)
	Source string `env:"CATALOG_SOURCE" envDefault:"bundled"`

	// Path is the JSON file read when Source is "file"
	Path string `env:"CATALOG_PATH"`

	// Watch reloads the file on change when Source is "file" (default: false)
	Watch bool `env:"CATALOG_WATCH" envDefault:"false"`

	// SettleDelay is how long writes must be quiet before a reload (default: 250ms)
	SettleDelay time.Duration `env:"CATALOG_SETTLE_DELAY" envDefault:"250ms"`
}

// DatabaseConfig holds database connection settings.
// Only used when the catalog source is postgres.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	URL string `env:"DATABASE_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" envDefault:"4"`

	// ConnectTimeout bounds the initial connection and load (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
}

// ExportConfig holds download settings.
type ExportConfig struct {
	// Mode is one of: native, snapshot, static (default: native)
	Mode string `env:"EXPORT_MODE" envDefault:"native"`

	// StaticDir holds pre-generated data.csv and data.xlsx for static mode
	StaticDir string `env:"EXPORT_STATIC_DIR" envDefault:"./exports"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// RequestsPerSecond is the sustained rate per IP (default: 5)
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`

	// Burst is the number of requests allowed at once (default: 20)
	Burst int `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// IdleTTL is how long an unused client bucket is kept (default: 10m)
	IdleTTL time.Duration `env:"RATE_LIMIT_IDLE_TTL" envDefault:"10m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" envDefault:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
