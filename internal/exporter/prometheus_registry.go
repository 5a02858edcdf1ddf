package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/neox5/acctstat/internal/series"
)

// createPrometheusRegistry creates a Prometheus registry serving the series
// registry. With internalMetrics the Go runtime and process collectors of
// the exporter itself are added.
func createPrometheusRegistry(reg *series.Registry, internalMetrics bool) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(newCollector(reg))

	if internalMetrics {
		promRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return promRegistry
}
