package web

import (
	"net/http"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/JonMunkholm/assort/internal/logging"
	"github.com/JonMunkholm/assort/internal/metrics"
	"github.com/JonMunkholm/assort/internal/web/templates"
)

// handleIndex renders the catalog page. HTMX requests get the catalog
// panel only so the page shell is not re-sent on every interaction.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Current()
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	view := core.Run(cat, templates.ParseQuery(r.URL.Query()))
	metrics.ObserveView(len(view.Products))

	logging.FromContext(r.Context()).Debug("view rendered",
		"version", view.Version,
		"rows", len(view.Products),
		"total", view.Total,
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request")

	if isHTMX(r) {
		err = templates.Catalog(view).Render(r.Context(), w)
	} else {
		err = templates.Page(templates.PageData{Title: s.opts.Title, View: view}).Render(r.Context(), w)
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
	}
}

// VersionsResponse is the body of GET /api/versions.
type VersionsResponse struct {
	Versions []string `json:"versions"`
	Default  string   `json:"default"`
}

// handleVersions lists the catalog versions and the default selection.
func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Current()
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, VersionsResponse{
		Versions: cat.Versions(),
		Default:  cat.ResolveVersion(""),
	})
}

// ProductsResponse is the body of GET /api/products.
type ProductsResponse struct {
	Version  string         `json:"version"`
	Versions []string       `json:"versions"`
	Total    int            `json:"total"`
	Count    int            `json:"count"`
	Sort     SortResponse   `json:"sort"`
	Facets   core.Facets    `json:"facets"`
	Products []core.Product `json:"products"`
}

// SortResponse echoes the applied sort.
type SortResponse struct {
	Column string `json:"column"`
	Dir    string `json:"dir"`
}

// handleProducts returns the same view as the page, as JSON.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Current()
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	view := core.Run(cat, templates.ParseQuery(r.URL.Query()))
	metrics.ObserveView(len(view.Products))

	writeJSON(w, http.StatusOK, ProductsResponse{
		Version:  view.Version,
		Versions: view.Versions,
		Total:    view.Total,
		Count:    len(view.Products),
		Sort:     SortResponse{Column: string(view.Query.Sort.Column), Dir: view.Query.Sort.Dir()},
		Facets:   view.Facets,
		Products: view.Products,
	})
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Snapshot string `json:"snapshot,omitempty"`
	Versions int    `json:"versions"`
	Products int    `json:"products"`
}

// handleHealth reports whether a catalog is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Current()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Snapshot: cat.SnapshotID().String(),
		Versions: len(cat.Versions()),
		Products: cat.Len(),
	})
}
