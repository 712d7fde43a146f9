package web

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/JonMunkholm/assort/internal/export"
	"github.com/JonMunkholm/assort/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []core.Product {
	return []core.Product{
		{ID: "A1", Name: "Tent", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "A2", Name: "Tarp", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "B1", Name: "T-Shirt", Category: "Tops", SizeRange: "XS-XL", Gender: "Womens", Version: "2"},
		{ID: "B2", Name: "Rain Shell", Category: "Outerwear", SizeRange: "S-XXL", Gender: "Mens", Version: "2"},
	}
}

func newTestServer(t *testing.T, exp *export.Exporter, opts Options) *Server {
	t.Helper()
	if exp == nil {
		exp = export.New(export.ModeNative, "")
	}
	return NewServer(core.NewStore(core.NewCatalog(testProducts())), exp, opts)
}

func get(t *testing.T, s *Server, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func decodeProducts(t *testing.T, rr *httptest.ResponseRecorder) ProductsResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func productNames(ps []core.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestIndex_FullPage(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "ASSORT Standard Products")
	assert.Contains(t, body, "<td>Tent</td>")
	assert.NotContains(t, body, "<td>T-Shirt</td>")
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestIndex_HTMXPartial(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/?version=2", map[string]string{"HX-Request": "true"})

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.NotContains(t, body, "<!doctype html>")
	assert.True(t, strings.HasPrefix(body, `<form id="catalog"`))
	assert.Contains(t, body, "<td>T-Shirt</td>")
	assert.Contains(t, rr.Header().Values("Vary"), "HX-Request")
}

func TestIndex_NoMatches(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/?name=xyz-nonexistent", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No products found")
}

func TestProducts_FilterAndSort(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := decodeProducts(t, get(t, s, "/api/products?version=1&category=Shelter&sort=name&dir=asc", nil))

	assert.Equal(t, "1", resp.Version)
	assert.Equal(t, []string{"1", "2"}, resp.Versions)
	assert.Equal(t, []string{"Tarp", "Tent"}, productNames(resp.Products))
	assert.Equal(t, SortResponse{Column: "name", Dir: "asc"}, resp.Sort)
	assert.Equal(t, 2, resp.Total)
}

func TestProducts_Defaults(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := decodeProducts(t, get(t, s, "/api/products", nil))

	assert.Equal(t, "1", resp.Version)
	assert.Equal(t, SortResponse{Column: "id", Dir: "asc"}, resp.Sort)
	assert.Equal(t, []string{"Tent", "Tarp"}, productNames(resp.Products))
	assert.Equal(t, []string{"Shelter"}, resp.Facets.Categories)
}

func TestProducts_NameSubstring(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := decodeProducts(t, get(t, s, "/api/products?version=2&name=shirt", nil))

	assert.Equal(t, []string{"T-Shirt"}, productNames(resp.Products))
	assert.Equal(t, 1, resp.Count)
}

func TestProducts_BlankNameIsNoFilter(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := decodeProducts(t, get(t, s, "/api/products?version=1&name=%20", nil))

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{"Tent", "Tarp"}, productNames(resp.Products))
}

func TestProducts_UnknownVersion(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := decodeProducts(t, get(t, s, "/api/products?version=9", nil))

	assert.Empty(t, resp.Products)
	assert.NotNil(t, resp.Products)
}

func TestVersions(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/api/versions", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp VersionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, VersionsResponse{Versions: []string{"1", "2"}, Default: "1"}, resp)
}

func TestDownload_CSVIgnoresFilters(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/download/data.csv?version=1&name=xyz-nonexistent", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="data.csv"`, rr.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, len(testProducts())+1)
}

func TestDownload_XLSX(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/download/data.xlsx", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="data.xlsx"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "PK"), "xlsx is a zip archive")
}

func TestDownload_SnapshotMode(t *testing.T) {
	s := newTestServer(t, export.New(export.ModeSnapshot, ""), Options{})
	rr := get(t, s, "/download/data.xlsx", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="data.xlsx"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, json.Valid(rr.Body.Bytes()))
	assert.Contains(t, rr.Body.String(), `"version": {`)
}

func TestDownload_ETag(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	first := get(t, s, "/download/data.csv", nil)
	require.Equal(t, http.StatusOK, first.Code)

	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	assert.True(t, strings.HasPrefix(etag, `W/"`), "etag %q should be weak", etag)

	second := get(t, s, "/download/data.csv", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	strong := strings.TrimPrefix(etag, "W/")
	for _, header := range []string{`"other", ` + etag, strong, "*"} {
		rr := get(t, s, "/download/data.csv", map[string]string{"If-None-Match": header})
		assert.Equal(t, http.StatusNotModified, rr.Code, "If-None-Match: %s", header)
	}

	stale := get(t, s, "/download/data.csv", map[string]string{"If-None-Match": `W/"stale"`})
	assert.Equal(t, http.StatusOK, stale.Code)
}

func TestETagMatch(t *testing.T) {
	const etag = `W/"abc-native-csv"`

	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{`W/"abc-native-csv"`, true},
		{`"abc-native-csv"`, true},
		{`"x", W/"abc-native-csv"`, true},
		{`"x","abc-native-csv"`, true},
		{`"abc-native-xlsx"`, false},
		{`W/"abc"`, false},
	}

	for _, tt := range tests {
		if got := etagMatch(tt.header, etag); got != tt.want {
			t.Errorf("etagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestDownload_Errors(t *testing.T) {
	tests := []struct {
		name     string
		exporter *export.Exporter
		target   string
		status   int
		code     string
	}{
		{"unsupported extension", nil, "/download/data.pdf", http.StatusNotFound, "EXP001"},
		{"wrong base name", nil, "/download/report.csv", http.StatusNotFound, "EXP001"},
		{"static asset missing", export.New(export.ModeStatic, t.TempDir()), "/download/data.csv", http.StatusNotFound, "EXP002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.exporter, Options{})
			rr := get(t, s, tt.target, map[string]string{"Accept": "application/json"})

			require.Equal(t, tt.status, rr.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestNoCatalog(t *testing.T) {
	s := NewServer(core.NewStore(nil), export.New(export.ModeNative, ""), Options{})

	rr := get(t, s, "/api/products", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "CAT003", resp.Code)

	rr = get(t, s, "/", map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `role="alert"`)

	rr = get(t, s, "/", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "(Code: CAT003)")

	rr = get(t, s, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	rr := get(t, s, "/healthz", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Versions)
	assert.Equal(t, 4, resp.Products)
	assert.NotEmpty(t, resp.Snapshot)
}

func TestRateLimited(t *testing.T) {
	limiter := ratelimit.New(0.001, 1, 0)
	defer limiter.Stop()

	s := newTestServer(t, nil, Options{Limiter: limiter})
	require.Equal(t, http.StatusOK, get(t, s, "/api/versions", nil).Code)

	rr := get(t, s, "/api/versions", nil)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "RATE001", resp.Code)
}

func TestStaticAndMetrics(t *testing.T) {
	s := newTestServer(t, nil, Options{EnableCSP: true})

	rr := get(t, s, "/static/app.css", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".products")
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))

	get(t, s, "/api/versions", nil)
	rr = get(t, s, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")
}
