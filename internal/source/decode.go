// Package source loads catalog data and normalizes it to the canonical
// in-memory shape.
//
// Two on-disk JSON shapes describe the same logical dataset:
//
//	{"version": {"1": [{"id", "name", "category", "sizeRange", "gender"}]}}
//	{"standardProducts": [{"id", "name", "categoryName", "sizeRangeName", "gender", "version": 1}]}
//
// Both decode to []core.Product. A Postgres table with the flat shape's
// columns is also supported.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnknownSchema is returned for documents with neither known top-level key.
	ErrUnknownSchema = errors.New("unknown catalog schema")

	// ErrInvalidProduct is returned when a record fails validation.
	ErrInvalidProduct = errors.New("invalid product")
)

// Schema identifies the on-disk JSON shape.
type Schema string

const (
	SchemaVersionMap       Schema = "version-map"
	SchemaStandardProducts Schema = "standard-products"
)

// mappedProduct is a record of the version-map shape.
type mappedProduct struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	SizeRange string `json:"sizeRange"`
	Gender    string `json:"gender"`
}

// flatProduct is a record of the standardProducts shape.
type flatProduct struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CategoryName  string `json:"categoryName"`
	SizeRangeName string `json:"sizeRangeName"`
	Gender        string `json:"gender"`
	Version       *int64 `json:"version"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a catalog document and returns its products.
func Decode(r io.Reader) ([]core.Product, Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog document held in memory.
// Products are returned grouped by ascending version, in source order
// within each version.
func Parse(data []byte) ([]core.Product, Schema, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, "", fmt.Errorf("parse catalog: %w", err)
	}

	var (
		products []core.Product
		schema   Schema
		err      error
	)

	switch {
	case probe["version"] != nil:
		schema = SchemaVersionMap
		products, err = parseVersionMap(probe["version"])
	case probe["standardProducts"] != nil:
		schema = SchemaStandardProducts
		products, err = parseStandardProducts(probe["standardProducts"])
	default:
		return nil, "", ErrUnknownSchema
	}
	if err != nil {
		return nil, schema, err
	}

	if err := Validate(products); err != nil {
		return nil, schema, err
	}
	return products, schema, nil
}

func parseVersionMap(raw json.RawMessage) ([]core.Product, error) {
	var doc map[string][]mappedProduct
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse version map: %w", err)
	}

	versions := make([]string, 0, len(doc))
	for v := range doc {
		versions = append(versions, v)
	}
	slices.SortFunc(versions, core.CompareNatural)

	var products []core.Product
	for _, v := range versions {
		for _, p := range doc[v] {
			products = append(products, core.Product{
				ID:        p.ID,
				Name:      p.Name,
				Category:  p.Category,
				SizeRange: p.SizeRange,
				Gender:    p.Gender,
				Version:   v,
			})
		}
	}
	return products, nil
}

func parseStandardProducts(raw json.RawMessage) ([]core.Product, error) {
	var doc []flatProduct
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse standard products: %w", err)
	}

	products := make([]core.Product, 0, len(doc))
	for i, p := range doc {
		if p.Version == nil {
			return nil, fmt.Errorf("%w at index %d: version is required", ErrInvalidProduct, i)
		}
		products = append(products, core.Product{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.CategoryName,
			SizeRange: p.SizeRangeName,
			Gender:    p.Gender,
			Version:   strconv.FormatInt(*p.Version, 10),
		})
	}

	slices.SortStableFunc(products, func(a, b core.Product) int {
		return core.CompareNatural(a.Version, b.Version)
	})
	return products, nil
}

// Validate checks every product against the struct rules on core.Product.
func Validate(products []core.Product) error {
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return fmt.Errorf("%w at index %d (id %q): %s is %s",
					ErrInvalidProduct, i, p.ID, verrs[0].Field(), verrs[0].Tag())
			}
			return fmt.Errorf("%w at index %d: %v", ErrInvalidProduct, i, err)
		}
	}
	return nil
}
