package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/psacct"
	"github.com/neox5/acctstat/internal/series"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	disabled := false
	return &config.Config{
		Host: "h1",
		Ingest: config.IngestConfig{
			DataPath:         t.TempDir(),
			PollInterval:     10 * time.Millisecond,
			ReadLockInterval: time.Millisecond,
			Workers:          2,
		},
		Export: config.ExportConfig{
			Prometheus: &config.PrometheusExportConfig{
				Enabled: true,
				Port:    0,
				Path:    "/metrics",
			},
		},
		Monitor: config.MonitorConfig{Enabled: &disabled},
	}
}

func TestNewWiresComponents(t *testing.T) {
	a, err := New(testConfig(t), nil)
	require.NoError(t, err)

	assert.NotNil(t, a.Series)
	assert.NotNil(t, a.Psacct)
	assert.NotNil(t, a.Sysstat)
	assert.NotNil(t, a.Watcher)
	assert.NotNil(t, a.PrometheusExporter)
	assert.Nil(t, a.OTELExporter)
	assert.Nil(t, a.Monitor)
}

func TestRunIngestsAndExposes(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Ingest.DataPath, "psacct-dump-all"),
		[]byte("     3       0.01re       0.00u       0.01s       231min       0maj       0swp   sadc\n"),
		0o644))

	key := series.NewKey("host", "h1", "process", "sadc")
	assert.Eventually(t, func() bool {
		s, ok := a.Series.Lookup(psacct.MetricInvocationTotal, key)
		return ok && s.Value() == 3
	}, 5*time.Second, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	a.PrometheusExporter.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `psacct_invocation_total{host="h1",process="sadc"} 3`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
}
