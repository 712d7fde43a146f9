package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testCatalog() *core.Catalog {
	return core.NewCatalog([]core.Product{
		{ID: "B1", Name: "T-Shirt", Category: "Tops", SizeRange: "XS-XL", Gender: "Womens", Version: "2"},
		{ID: "A1", Name: "Tent", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "A2", Name: "Tarp", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"XLSX", FormatXLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"native", "snapshot", "Static"} {
		_, err := ParseMode(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseMode("zip")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "data.csv", FormatCSV.Filename())
	assert.Equal(t, "data.xlsx", FormatXLSX.Filename())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testCatalog()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"Version", "ID", "Name", "Category", "Size Range", "Gender"},
		{"1", "A1", "Tent", "Shelter", "One Size", "Unisex"},
		{"1", "A2", "Tarp", "Shelter", "One Size", "Unisex"},
		{"2", "B1", "T-Shirt", "Tops", "XS-XL", "Womens"},
	}
	assert.Equal(t, want, rows)
}

func TestWriteCSVEmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, core.NewCatalog(nil)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testCatalog()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Version", "ID", "Name", "Category", "Size Range", "Gender"}, rows[0])
	assert.Equal(t, []string{"2", "B1", "T-Shirt", "Tops", "XS-XL", "Womens"}, rows[3])
}

func TestWriteSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, testCatalog()))

	out := buf.String()
	assert.Contains(t, out, "{\n  \"version\": {\n    \"1\": [")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"1"`)), bytes.Index(buf.Bytes(), []byte(`"2"`)))

	var doc struct {
		Version map[string][]map[string]string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Version["1"], 2)
	assert.Equal(t, "Tent", doc.Version["1"][0]["name"])
	assert.Equal(t, "One Size", doc.Version["1"][0]["sizeRange"])
	assert.Equal(t, "B1", doc.Version["2"][0]["id"])
}

func TestSnapshotVersionsInNaturalOrder(t *testing.T) {
	cat := core.NewCatalog([]core.Product{
		{ID: "x", Name: "X", Version: "10"},
		{ID: "y", Name: "Y", Version: "2"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, cat))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"2"`)), bytes.Index(buf.Bytes(), []byte(`"10"`)))
}

func TestSnapshotDoesNotEscapeHTML(t *testing.T) {
	cat := core.NewCatalog([]core.Product{
		{ID: "<a>", Name: "Socks & Liners", Category: "Tops", Version: "1"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, cat))

	out := buf.String()
	assert.Contains(t, out, `"name": "Socks & Liners"`)
	assert.Contains(t, out, `"id": "<a>"`)
	assert.NotContains(t, out, `\u0026`)
	assert.NotContains(t, out, `\u003c`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestExporterModes(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()

	t.Run("native csv", func(t *testing.T) {
		e := New(ModeNative, "")
		var buf bytes.Buffer
		require.NoError(t, e.Export(ctx, &buf, cat, FormatCSV))
		assert.Equal(t, "text/csv; charset=utf-8", e.ContentType(FormatCSV))
		assert.Contains(t, buf.String(), "Version,ID,Name")
	})

	t.Run("native xlsx content type", func(t *testing.T) {
		e := New(ModeNative, "")
		assert.Equal(t, contentTypeXLSX, e.ContentType(FormatXLSX))
	})

	t.Run("snapshot ignores extension", func(t *testing.T) {
		e := New(ModeSnapshot, "")
		var csvOut, xlsxOut bytes.Buffer
		require.NoError(t, e.Export(ctx, &csvOut, cat, FormatCSV))
		require.NoError(t, e.Export(ctx, &xlsxOut, cat, FormatXLSX))
		assert.Equal(t, csvOut.String(), xlsxOut.String())
		assert.Equal(t, "application/json", e.ContentType(FormatXLSX))
		assert.True(t, json.Valid(csvOut.Bytes()))
	})

	t.Run("static", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("pre,baked\n"), 0o644))

		e := New(ModeStatic, dir)
		var buf bytes.Buffer
		require.NoError(t, e.Export(ctx, &buf, cat, FormatCSV))
		assert.Equal(t, "pre,baked\n", buf.String())

		err := e.Export(ctx, &buf, cat, FormatXLSX)
		assert.ErrorIs(t, err, ErrStaticAssetMissing)
		assert.Equal(t, "EXP002", core.MapError(err).Code)
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := New(ModeNative, "").Export(ctx, &bytes.Buffer{}, cat, Format("pdf"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Equal(t, "EXP001", core.MapError(err).Code)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := New(ModeNative, "").Export(cctx, &bytes.Buffer{}, cat, FormatCSV)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// Downloads never reflect the filtered view.
func TestExportIgnoresView(t *testing.T) {
	cat := testCatalog()
	view := core.Run(cat, core.Query{
		Version:    "1",
		Predicates: core.Predicates{Name: "xyz-nonexistent"},
	})
	require.True(t, view.Empty())

	var buf bytes.Buffer
	require.NoError(t, New(ModeNative, "").Export(context.Background(), &buf, cat, FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, cat.Len()+1)
}
