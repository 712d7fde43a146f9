// Package export writes the full catalog as a downloadable artifact.
//
// Downloads are dataset snapshots, not view snapshots: every mode ignores
// the version, filter and sort state of the page that triggered it.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/assort/internal/core"
)

var (
	// ErrUnsupportedFormat is returned for formats other than csv and xlsx.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrStaticAssetMissing is returned when a pre-generated file is absent.
	ErrStaticAssetMissing = errors.New("static export asset missing")

	// ErrUnknownMode is returned for an unrecognized export mode.
	ErrUnknownMode = errors.New("unknown export mode")
)

// Format is a download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Filename returns the download name, always data.<format>.
func (f Format) Filename() string {
	return "data." + string(f)
}

// Mode selects how the artifact is produced.
type Mode string

const (
	// ModeNative writes real CSV or XLSX content.
	ModeNative Mode = "native"

	// ModeSnapshot writes the dataset as indented JSON under the requested
	// file name, whatever its extension.
	ModeSnapshot Mode = "snapshot"

	// ModeStatic streams a pre-generated file from disk.
	ModeStatic Mode = "static"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeNative, ModeSnapshot, ModeStatic:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeJSON = "application/json"
)

// Exporter writes catalog downloads.
type Exporter struct {
	mode      Mode
	staticDir string
}

// New creates an exporter. staticDir is only used in ModeStatic.
func New(mode Mode, staticDir string) *Exporter {
	return &Exporter{mode: mode, staticDir: staticDir}
}

// Mode returns the configured mode.
func (e *Exporter) Mode() Mode {
	return e.mode
}

// ContentType returns the Content-Type of the artifact for f.
func (e *Exporter) ContentType(f Format) string {
	if e.mode == ModeSnapshot {
		return contentTypeJSON
	}
	if f == FormatXLSX {
		return contentTypeXLSX
	}
	return contentTypeCSV
}

// Export writes the artifact for f to w. cat must hold the full dataset.
func (e *Exporter) Export(ctx context.Context, w io.Writer, cat *core.Catalog, f Format) error {
	if f != FormatCSV && f != FormatXLSX {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch e.mode {
	case ModeSnapshot:
		return WriteSnapshot(w, cat)
	case ModeStatic:
		return e.copyStatic(w, f)
	case ModeNative:
		if f == FormatXLSX {
			return WriteXLSX(w, cat)
		}
		return WriteCSV(w, cat)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, e.mode)
	}
}

// StaticPath returns the on-disk path served for f in ModeStatic.
func (e *Exporter) StaticPath(f Format) string {
	return filepath.Join(e.staticDir, f.Filename())
}

func (e *Exporter) copyStatic(w io.Writer, f Format) error {
	path := e.StaticPath(f)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStaticAssetMissing, path)
		}
		return fmt.Errorf("open static export %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("copy static export %s: %w", path, err)
	}
	return nil
}

// header is the column row shared by CSV and XLSX output.
func header() []string {
	row := []string{"Version"}
	for _, c := range core.Columns {
		row = append(row, c.Label())
	}
	return row
}

// record renders one product in header order.
func record(p core.Product) []string {
	row := []string{p.Version}
	for _, c := range core.Columns {
		row = append(row, c.Value(p))
	}
	return row
}

// ordered returns every product grouped by ascending version.
func ordered(cat *core.Catalog) []core.Product {
	var out []core.Product
	for _, v := range cat.Versions() {
		out = append(out, cat.Select(v)...)
	}
	return out
}
