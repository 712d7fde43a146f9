package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/JonMunkholm/assort/internal/logging"
	"github.com/JonMunkholm/assort/internal/source"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	source      string
	path        string
	databaseURL string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Browse and export the standard product catalog",
		Long: `Browse and export the standard product catalog.

Subcommands:
  versions - List catalog versions
  list     - Print a filtered, sorted view of one version
  export   - Write the full dataset as CSV, XLSX or JSON`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel, "text"))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.source, "source", envOr("CATALOG_SOURCE", source.SourceBundled), "catalog source: bundled, file or postgres")
	flags.StringVar(&opts.path, "path", os.Getenv("CATALOG_PATH"), "catalog JSON file for --source=file")
	flags.StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "connection string for --source=postgres")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newVersionsCmd(opts),
		newListCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// loadCatalog opens the configured source and loads one snapshot.
func (o *rootOptions) loadCatalog(ctx context.Context) (*core.Catalog, error) {
	loader, closeFn, err := source.Open(ctx, source.Options{
		Source:      o.source,
		Path:        o.path,
		DatabaseURL: o.databaseURL,
	})
	if err != nil {
		return nil, err
	}
	defer closeFn()

	cat, err := loader.Load(ctx)
	if err != nil {
		if core.IsUserFacing(err) {
			return nil, fmt.Errorf("%s\n%w", core.FormatUserError(err), err)
		}
		return nil, err
	}
	return cat, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
