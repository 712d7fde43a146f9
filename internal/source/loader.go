package source

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/assort/internal/core"
)

//go:embed bundled/data.json
var bundledData []byte

// Loader produces a catalog snapshot.
type Loader interface {
	Load(ctx context.Context) (*core.Catalog, error)
}

// Bundled loads the JSON document compiled into the binary.
type Bundled struct{}

// Load parses the bundled document.
func (Bundled) Load(_ context.Context) (*core.Catalog, error) {
	products, schema, err := Decode(bytes.NewReader(bundledData))
	if err != nil {
		return nil, fmt.Errorf("load bundled catalog: %w", err)
	}
	return build(products, "bundled", schema), nil
}

// File loads a JSON document from disk.
type File struct {
	Path string
}

// Load reads and parses the file.
func (f File) Load(_ context.Context) (*core.Catalog, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", f.Path, err)
	}

	products, schema, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", f.Path, err)
	}
	return build(products, f.Path, schema), nil
}

// build creates the catalog and reports load statistics.
func build(products []core.Product, origin string, schema Schema) *core.Catalog {
	cat := core.NewCatalog(products)

	for version, ids := range cat.DuplicateIDs() {
		slog.Warn("duplicate product ids in version",
			"origin", origin,
			"version", version,
			"ids", ids,
		)
	}

	slog.Info("catalog loaded",
		"origin", origin,
		"schema", schema,
		"products", cat.Len(),
		"versions", len(cat.Versions()),
		"snapshot", cat.SnapshotID(),
	)
	return cat
}
