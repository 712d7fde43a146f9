package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnknownSource is returned by Open for an unrecognized source name.
var ErrUnknownSource = errors.New("unknown catalog source")

// Source names accepted by Open.
const (
	SourceBundled  = "bundled"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Options selects and configures a catalog source.
type Options struct {
	Source         string
	Path           string
	DatabaseURL    string
	MaxConns       int
	ConnectTimeout time.Duration
}

// Open returns the loader for opts. The returned close function releases
// any resources held by the loader and is never nil.
func Open(ctx context.Context, opts Options) (Loader, func(), error) {
	noop := func() {}

	switch opts.Source {
	case "", SourceBundled:
		return Bundled{}, noop, nil
	case SourceFile:
		if opts.Path == "" {
			return nil, noop, fmt.Errorf("%w: file source needs a path", ErrUnknownSource)
		}
		return File{Path: opts.Path}, noop, nil
	case SourcePostgres:
		pool, err := connect(ctx, opts)
		if err != nil {
			return nil, noop, err
		}
		return Postgres{DB: pool}, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, opts.Source)
	}
}

// connect opens and verifies a pgx pool.
func connect(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}

	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("connected to database", "database", poolConfig.ConnConfig.Database)
	return pool, nil
}
