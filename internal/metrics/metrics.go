// Package metrics defines the prometheus collectors for the catalog service.
package metrics

import (
	"github.com/JonMunkholm/assort/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests being served.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// CatalogProducts reports the product count per version of the live catalog.
	CatalogProducts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products per catalog version",
		},
		[]string{"version"},
	)

	// CatalogReloads counts catalog reload attempts by result.
	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"result"},
	)

	// ExportsTotal counts downloads by format and mode.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_exports_total",
			Help: "Total number of catalog downloads",
		},
		[]string{"format", "mode"},
	)

	// ViewRows observes the number of rows returned per table view.
	ViewRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_view_rows",
			Help:    "Rows returned per catalog view",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// RecordCatalog publishes per-version counts for c, replacing earlier values.
func RecordCatalog(c *core.Catalog) {
	CatalogProducts.Reset()
	for v, products := range c.Partitions() {
		CatalogProducts.WithLabelValues(v).Set(float64(len(products)))
	}
}

// RecordReload counts a reload and, on success, republishes catalog counts.
func RecordReload(c *core.Catalog, err error) {
	if err != nil {
		CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	CatalogReloads.WithLabelValues("success").Inc()
	RecordCatalog(c)
}

// RecordExport counts a download.
func RecordExport(format, mode string) {
	ExportsTotal.WithLabelValues(format, mode).Inc()
}

// ObserveView records the size of a rendered view.
func ObserveView(rows int) {
	ViewRows.Observe(float64(rows))
}
