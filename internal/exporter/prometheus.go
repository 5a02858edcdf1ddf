package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/series"
)

// PrometheusExporter provides the HTTP endpoint scraped by Prometheus.
type PrometheusExporter struct {
	addr         string
	path         string
	server       *http.Server
	promRegistry *prometheus.Registry
}

// NewPrometheusExporter creates a new Prometheus HTTP exporter over the series registry.
func NewPrometheusExporter(cfg *config.PrometheusExportConfig, reg *series.Registry) *PrometheusExporter {
	addr := fmt.Sprintf(":%d", cfg.Port)
	promRegistry := createPrometheusRegistry(reg, cfg.InternalMetrics)

	return &PrometheusExporter{
		addr:         addr,
		path:         cfg.Path,
		promRegistry: promRegistry,
		server: &http.Server{
			Addr:              addr,
			Handler:           createRouter(cfg.Path, promRegistry, cfg.InternalMetrics),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the routed HTTP handler.
func (e *PrometheusExporter) Handler() http.Handler {
	return e.server.Handler
}

// Start begins serving HTTP requests and blocks until ctx is cancelled
// or the server fails.
func (e *PrometheusExporter) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting prometheus exporter", "addr", e.addr, "path", e.path)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return e.Stop()
	}
}

// Stop gracefully stops the exporter.
func (e *PrometheusExporter) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down prometheus exporter")
	return e.server.Shutdown(ctx)
}
