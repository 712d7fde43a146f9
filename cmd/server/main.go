package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/assort/internal/config"
	"github.com/JonMunkholm/assort/internal/core"
	"github.com/JonMunkholm/assort/internal/export"
	"github.com/JonMunkholm/assort/internal/logging"
	"github.com/JonMunkholm/assort/internal/metrics"
	"github.com/JonMunkholm/assort/internal/ratelimit"
	"github.com/JonMunkholm/assort/internal/source"
	"github.com/JonMunkholm/assort/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Values already in the environment win over .env
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader, closeSource, err := source.Open(ctx, source.Options{
		Source:         cfg.Catalog.Source,
		Path:           cfg.Catalog.Path,
		DatabaseURL:    cfg.Database.URL,
		MaxConns:       cfg.Database.MaxConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		slog.Error("failed to open catalog source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	// Malformed data is fatal at startup; only later reloads may fail softly.
	cat, err := loader.Load(ctx)
	if err != nil {
		slog.Error("failed to load catalog", "error", err, "hint", core.FormatUserError(err))
		os.Exit(1)
	}
	store := core.NewStore(cat)
	metrics.RecordCatalog(cat)

	if cfg.Catalog.Watch {
		w, err := source.NewWatcher(source.File{Path: cfg.Catalog.Path}, store, cfg.Catalog.SettleDelay, metrics.RecordReload)
		if err != nil {
			slog.Error("failed to watch catalog", "error", err)
			os.Exit(1)
		}
		go w.Run(ctx)
		slog.Info("watching catalog file", "path", cfg.Catalog.Path)
	}

	mode, err := export.ParseMode(cfg.Export.Mode)
	if err != nil {
		slog.Error("invalid export mode", "error", err)
		os.Exit(1)
	}

	opts := web.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TrustedProxies: cfg.Security.TrustedProxies,
		EnableCSP:      cfg.Security.EnableCSP,
	}
	if cfg.Rate.Enabled {
		opts.Limiter = ratelimit.New(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst, cfg.Rate.IdleTTL)
		defer opts.Limiter.Stop()
	}

	server := web.NewServer(store, export.New(mode, cfg.Export.StaticDir), opts)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-drained
	slog.Info("server stopped")
}
