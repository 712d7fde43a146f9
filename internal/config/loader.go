package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Catalog sources.
const (
	SourceBundled  = "bundled"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// normalize lowercases enumerations and trims list entries.
func (c *Config) normalize() {
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	c.Export.Mode = strings.ToLower(strings.TrimSpace(c.Export.Mode))

	proxies := c.Security.TrustedProxies[:0]
	for _, p := range c.Security.TrustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	c.Security.TrustedProxies = proxies
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Catalog validation
	switch strings.ToLower(c.Catalog.Source) {
	case SourceBundled:
	case SourceFile:
		if c.Catalog.Path == "" {
			errs = append(errs, "CATALOG_PATH is required when CATALOG_SOURCE is file")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			errs = append(errs, "DATABASE_URL is required when CATALOG_SOURCE is postgres")
		}
		if c.Database.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
	default:
		errs = append(errs, fmt.Sprintf("CATALOG_SOURCE (%q) must be one of: bundled, file, postgres", c.Catalog.Source))
	}
	if c.Catalog.Watch && strings.ToLower(c.Catalog.Source) != SourceFile {
		errs = append(errs, "CATALOG_WATCH requires CATALOG_SOURCE=file")
	}
	if c.Catalog.SettleDelay < 0 {
		errs = append(errs, "CATALOG_SETTLE_DELAY must be non-negative")
	}

	// Export validation
	switch strings.ToLower(c.Export.Mode) {
	case "native", "snapshot":
	case "static":
		if c.Export.StaticDir == "" {
			errs = append(errs, "EXPORT_STATIC_DIR is required when EXPORT_MODE is static")
		}
	default:
		errs = append(errs, fmt.Sprintf("EXPORT_MODE (%q) must be one of: native, snapshot, static", c.Export.Mode))
	}

	// Rate limit validation
	if c.Rate.Enabled {
		if c.Rate.RequestsPerSecond <= 0 {
			errs = append(errs, "RATE_LIMIT_RPS must be positive when rate limiting is enabled")
		}
		if c.Rate.Burst <= 0 {
			errs = append(errs, "RATE_LIMIT_BURST must be positive when rate limiting is enabled")
		}
	}

	// Security validation
	for _, cidr := range c.Security.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Sprintf("TRUSTED_PROXIES entry %q is not a valid CIDR", cidr))
		}
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	dbURL := ""
	if c.Database.URL != "" {
		dbURL = "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Catalog: {Source: %q, Path: %q, Watch: %v}, ",
		c.Catalog.Source, c.Catalog.Path, c.Catalog.Watch))
	b.WriteString(fmt.Sprintf("Database: {URL: %s, MaxConns: %d}, ", dbURL, c.Database.MaxConns))
	b.WriteString(fmt.Sprintf("Export: {Mode: %q, StaticDir: %q}, ", c.Export.Mode, c.Export.StaticDir))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RPS: %g, Burst: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerSecond, c.Rate.Burst))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
