package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/assort/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full dataset as CSV, XLSX or JSON",
		Long: `Write the full dataset, every version, to a file.

The json format writes the version mapping document with two-space
indentation. Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "json" {
				if _, err := export.ParseFormat(format); err != nil {
					return err
				}
			}

			cat, err := root.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				out = "data." + format
			}

			write := func(w io.Writer) error {
				if format == "json" {
					return export.WriteSnapshot(w, cat)
				}
				return export.New(export.ModeNative, "").Export(cmd.Context(), w, cat, export.Format(format))
			}

			if out == "-" {
				w := bufio.NewWriter(cmd.OutOrStdout())
				if err := write(w); err != nil {
					return err
				}
				return w.Flush()
			}
			if err := writeFileAtomic(out, write); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d products to %s\n", cat.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv, xlsx or json")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: data.<format>)")
	return cmd
}

// writeFileAtomic writes to a temp file next to path and renames it into
// place. On any error the temp file is removed and path is left untouched.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
