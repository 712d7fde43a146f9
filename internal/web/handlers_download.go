package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/assort/internal/export"
	"github.com/JonMunkholm/assort/internal/logging"
	"github.com/JonMunkholm/assort/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// handleDownload serves data.csv or data.xlsx. The artifact always covers
// the whole dataset; query parameters of the page are ignored.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format, err := downloadFormat(chi.URLParam(r, "filename"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	cat, err := s.store.Current()
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	logger := logging.WithFields(r.Context(),
		"format", format,
		"mode", s.exporter.Mode(),
		"snapshot", cat.SnapshotID(),
	)

	// Native and snapshot output is a pure function of the catalog, so the
	// snapshot ID identifies it. Static files change independently.
	// The tag is weak because Compress may re-encode the body.
	etag := ""
	if s.exporter.Mode() != export.ModeStatic {
		etag = fmt.Sprintf(`W/"%s-%s-%s"`, cat.SnapshotID(), s.exporter.Mode(), format)
		if etagMatch(r.Header.Get("If-None-Match"), etag) {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			logger.Debug("export not modified")
			return
		}
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(r.Context(), &buf, cat, format); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, export.ErrStaticAssetMissing) {
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}

	metrics.RecordExport(string(format), string(s.exporter.Mode()))
	logger.Info("catalog exported", "bytes", buf.Len())

	h := w.Header()
	h.Set("Content-Type", s.exporter.ContentType(format))
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename()))
	if etag != "" {
		h.Set("ETag", etag)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("download interrupted", "error", err)
	}
}

// downloadFormat accepts only data.csv and data.xlsx.
func downloadFormat(filename string) (export.Format, error) {
	ext, ok := strings.CutPrefix(filename, "data.")
	if !ok {
		return "", fmt.Errorf("%w: %q", export.ErrUnsupportedFormat, filename)
	}
	return export.ParseFormat(ext)
}

// etagMatch reports whether an If-None-Match header matches etag using
// weak comparison: "*" matches anything and W/ prefixes are ignored.
func etagMatch(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}

	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
