package exporter

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neox5/acctstat/internal/version"
)

// createRouter creates the HTTP routes for the metrics endpoint.
func createRouter(
	path string,
	promRegistry *prometheus.Registry,
	internalMetricsEnabled bool,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	// Create base handler
	baseHandler := promhttp.HandlerFor(
		promRegistry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	)

	// Conditionally wrap with instrumentation
	var handler http.Handler
	if internalMetricsEnabled {
		handler = promhttp.InstrumentMetricHandler(promRegistry, baseHandler)
		slog.Info("enabled prometheus internal metrics",
			"metrics", []string{
				"promhttp_metric_handler_requests_total",
				"promhttp_metric_handler_requests_in_flight",
			})
	} else {
		handler = baseHandler
	}

	router.Handle(path, handler).Methods(http.MethodGet)
	router.HandleFunc(strings.TrimSuffix(path, "/")+"/version", handleVersion).Methods(http.MethodGet)

	return router
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "acctstat %s\n", version.String())
}

// loggingMiddleware logs scrape requests when debug logging is enabled.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
