package exporter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/series"
)

func populated() *series.Registry {
	reg := series.NewRegistry(nil)
	key := series.NewKey("process", "sadc", "host", "h1")
	reg.GetOrCreate("psacct.invocation.total", key, series.KindCounter).Add(4)
	reg.GetOrCreate("psacct.time.user", key, series.KindGauge).Set(1234)
	return reg
}

func TestPrometheusName(t *testing.T) {
	assert.Equal(t, "psacct_invocation_total", PrometheusName("psacct.invocation.total"))
	assert.Equal(t, "sysstat_pressure_io_all_10", PrometheusName("sysstat.pressure.io.all.10"))
	assert.Equal(t, "already_fine", PrometheusName("already_fine"))
}

func TestCollectorRendersRegistry(t *testing.T) {
	c := newCollector(populated())

	expected := `
# HELP psacct_invocation_total psacct.invocation.total
# TYPE psacct_invocation_total counter
psacct_invocation_total{host="h1",process="sadc"} 4
# HELP psacct_time_user psacct.time.user
# TYPE psacct_time_user gauge
psacct_time_user{host="h1",process="sadc"} 1234
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))
}

func TestCollectorSeesLateSeries(t *testing.T) {
	reg := populated()
	promRegistry := createPrometheusRegistry(reg, false)

	n, err := testutil.GatherAndCount(promRegistry)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, cpu := range []string{"all", "0", "1"} {
		reg.GetOrCreate("sysstat.cpu.idle", series.NewKey("host", "h1", "cpu", cpu), series.KindGauge).Set(99)
	}

	n, err = testutil.GatherAndCount(promRegistry, "sysstat_cpu_idle")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func get(t *testing.T, h http.Handler, method, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestPrometheusExporterRoutes(t *testing.T) {
	e := NewPrometheusExporter(&config.PrometheusExportConfig{
		Enabled: true,
		Port:    9090,
		Path:    "/metrics",
	}, populated())

	code, body := get(t, e.Handler(), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `psacct_invocation_total{host="h1",process="sadc"} 4`)
	assert.Contains(t, body, `psacct_time_user{host="h1",process="sadc"} 1234`)
	assert.NotContains(t, body, "promhttp_metric_handler_requests_total")

	code, body = get(t, e.Handler(), http.MethodGet, "/metrics/version")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "acctstat dev\n", body)

	code, _ = get(t, e.Handler(), http.MethodPost, "/metrics")
	assert.Equal(t, http.StatusMethodNotAllowed, code)

	code, _ = get(t, e.Handler(), http.MethodGet, "/other")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPrometheusExporterInternalMetrics(t *testing.T) {
	e := NewPrometheusExporter(&config.PrometheusExportConfig{
		Enabled:         true,
		Port:            9090,
		Path:            "/metrics",
		InternalMetrics: true,
	}, populated())

	code, body := get(t, e.Handler(), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "promhttp_metric_handler_requests_total")
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "psacct_invocation_total")
}

func TestPrometheusExporterStartStop(t *testing.T) {
	e := NewPrometheusExporter(&config.PrometheusExportConfig{
		Enabled: true,
		Port:    0,
		Path:    "/metrics",
	}, populated())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Start(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestOTELExporterObservesRegistry(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	reg := series.NewRegistry(nil)
	reg.GetOrCreate("psacct.invocation.total", series.NewKey("host", "h1", "process", "sadc"), series.KindCounter).Add(4)

	e := newOTELExporter(&config.OTELExportConfig{
		Enabled:   true,
		Transport: config.TransportGRPC,
		Host:      "localhost",
		Port:      4317,
	}, mp, reg)

	// Created after the exporter: picked up through the subscription.
	reg.GetOrCreate("psacct.invocation.total", series.NewKey("host", "h1", "process", "cron"), series.KindCounter).Add(1)
	reg.GetOrCreate("sysstat.mem.kb.free", series.NewKey("host", "h1"), series.KindGauge).Set(42)

	assert.Equal(t, 2, e.Instruments())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	sum, ok := byName["psacct.invocation.total"].Data.(metricdata.Sum[float64])
	require.True(t, ok)
	assert.True(t, sum.IsMonotonic)
	values := make(map[string]float64)
	for _, dp := range sum.DataPoints {
		p, ok := dp.Attributes.Value("process")
		require.True(t, ok)
		values[p.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]float64{"sadc": 4, "cron": 1}, values)

	gauge, ok := byName["sysstat.mem.kb.free"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 42.0, gauge.DataPoints[0].Value)

	require.NoError(t, mp.Shutdown(context.Background()))
}
