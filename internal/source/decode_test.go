package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionMapDoc = `{
  "version": {
    "2": [
      {"id": "B1", "name": "T-Shirt", "category": "Tops", "sizeRange": "XS-XL", "gender": "Womens"}
    ],
    "1": [
      {"id": "A1", "name": "Tent", "category": "Shelter", "sizeRange": "One Size", "gender": "Unisex"},
      {"id": "A2", "name": "Tarp", "category": "Shelter", "sizeRange": "One Size", "gender": "Unisex"}
    ]
  }
}`

const standardProductsDoc = `{
  "standardProducts": [
    {"id": "B1", "name": "T-Shirt", "categoryName": "Tops", "sizeRangeName": "XS-XL", "gender": "Womens", "version": 2},
    {"id": "A1", "name": "Tent", "categoryName": "Shelter", "sizeRangeName": "One Size", "gender": "Unisex", "version": 1},
    {"id": "A2", "name": "Tarp", "categoryName": "Shelter", "sizeRangeName": "One Size", "gender": "Unisex", "version": 1}
  ]
}`

func TestParse_BothSchemasNormalizeIdentically(t *testing.T) {
	mapped, schema, err := Parse([]byte(versionMapDoc))
	require.NoError(t, err)
	assert.Equal(t, SchemaVersionMap, schema)

	flat, schema, err := Parse([]byte(standardProductsDoc))
	require.NoError(t, err)
	assert.Equal(t, SchemaStandardProducts, schema)

	want := []core.Product{
		{ID: "A1", Name: "Tent", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "A2", Name: "Tarp", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "B1", Name: "T-Shirt", Category: "Tops", SizeRange: "XS-XL", Gender: "Womens", Version: "2"},
	}
	assert.Equal(t, want, mapped)
	assert.Equal(t, want, flat)
	assert.Equal(t, core.NewCatalog(mapped).SnapshotID(), core.NewCatalog(flat).SnapshotID())
}

func TestParse_UnknownSchema(t *testing.T) {
	_, _, err := Parse([]byte(`{"products": []}`))
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, _, err := Parse([]byte(`{"version": `))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownSchema))
}

func TestParse_InvalidProduct(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing name in version map",
			doc:  `{"version": {"1": [{"id": "A1", "name": ""}]}}`,
			want: "Name is required",
		},
		{
			name: "missing id in standard products",
			doc:  `{"standardProducts": [{"name": "Tent", "version": 1}]}`,
			want: "ID is required",
		},
		{
			name: "missing version in standard products",
			doc:  `{"standardProducts": [{"id": "A1", "name": "Tent"}]}`,
			want: "version is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidProduct)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_Reader(t *testing.T) {
	products, schema, err := Decode(strings.NewReader(versionMapDoc))
	require.NoError(t, err)
	assert.Equal(t, SchemaVersionMap, schema)
	assert.Len(t, products, 3)
}

func TestParse_NumericVersionOrder(t *testing.T) {
	doc := `{"version": {"10": [{"id": "c", "name": "c"}], "9": [{"id": "b", "name": "b"}], "1": [{"id": "a", "name": "a"}]}}`

	products, _, err := Parse([]byte(doc))
	require.NoError(t, err)

	var versions []string
	for _, p := range products {
		versions = append(versions, p.Version)
	}
	assert.Equal(t, []string{"1", "9", "10"}, versions)
}
