package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Host)
	assert.Equal(t, DefaultDataPath, cfg.Ingest.DataPath)
	assert.Equal(t, DefaultPollInterval, cfg.Ingest.PollInterval)
	assert.Equal(t, DefaultReadLockInterval, cfg.Ingest.ReadLockInterval)
	assert.Equal(t, DefaultWorkers, cfg.Ingest.Workers)
	assert.True(t, cfg.Ingest.ArchiveEnabled())

	require.True(t, cfg.Export.PrometheusEnabled())
	assert.False(t, cfg.Export.OTELEnabled())
	assert.Equal(t, DefaultPrometheusPort, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultPrometheusPath, cfg.Export.Prometheus.Path)

	assert.True(t, cfg.Monitor.IsEnabled())
	assert.Equal(t, DefaultMonitorInterval, cfg.Monitor.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
host: node-7
ingest:
  data_path: /var/lib/acct
  poll_interval: 2s
  read_lock_interval: 500ms
  workers: 8
  archive: false
export:
  otel:
    enabled: true
    transport: http
    interval: 30s
    headers:
      x-tenant: ops
monitor:
  enabled: false
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "node-7", cfg.Host)
	assert.Equal(t, "/var/lib/acct", cfg.Ingest.DataPath)
	assert.Equal(t, 2*time.Second, cfg.Ingest.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Ingest.ReadLockInterval)
	assert.Equal(t, 8, cfg.Ingest.Workers)
	assert.False(t, cfg.Ingest.ArchiveEnabled())

	assert.False(t, cfg.Export.PrometheusEnabled())
	require.True(t, cfg.Export.OTELEnabled())
	otel := cfg.Export.OTEL
	assert.Equal(t, TransportHTTP, otel.Transport)
	assert.Equal(t, "localhost:4318", otel.GetEndpoint())
	assert.Equal(t, 30*time.Second, otel.Interval)
	assert.Equal(t, "ops", otel.Headers["x-tenant"])
	assert.Equal(t, DefaultServiceName, otel.Resource["service.name"])
	assert.Equal(t, "dev", otel.Resource["service.version"])

	assert.False(t, cfg.Monitor.IsEnabled())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"no exporter": `
export:
  prometheus: {enabled: false}
`,
		"bad transport": `
export:
  otel: {enabled: true, transport: udp}
`,
		"bad port": `
export:
  prometheus: {enabled: true, port: 70000}
`,
		"bad path": `
export:
  prometheus: {enabled: true, path: metrics}
`,
		"negative workers": `
ingest: {workers: -1}
`,
		"negative poll": `
ingest: {poll_interval: -1s}
`,
		"bad level": `
log: {level: trace}
`,
		"bad format": `
log: {format: xml}
`,
		"not yaml": `
ingest: [
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBothExporters(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
export:
  prometheus: {enabled: true}
  otel: {enabled: true, transport: http}
`))
	require.NoError(t, err)

	assert.True(t, cfg.Export.PrometheusEnabled())
	assert.True(t, cfg.Export.OTELEnabled())
	assert.Equal(t, DefaultPrometheusPort, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultOTELPortHTTP, cfg.Export.OTEL.Port)
}

func TestOTELPortDefaultsByTransport(t *testing.T) {
	grpc := &OTELExportConfig{Enabled: true}
	require.NoError(t, grpc.Validate())
	assert.Equal(t, TransportGRPC, grpc.Transport)
	assert.Equal(t, DefaultOTELPortGRPC, grpc.Port)
	assert.Equal(t, DefaultOTELInterval, grpc.Interval)

	custom := &OTELExportConfig{Enabled: true, Transport: TransportHTTP, Host: "collector", Port: 14318}
	require.NoError(t, custom.Validate())
	assert.Equal(t, "collector:14318", custom.GetEndpoint())
}

func TestResolveHost(t *testing.T) {
	orig := hostInfo
	t.Cleanup(func() { hostInfo = orig })

	hostInfo = func() (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "from-info"}, nil
	}
	assert.Equal(t, "from-info", resolveHost())

	hostInfo = func() (*host.InfoStat, error) {
		return nil, errors.New("no host info")
	}
	expected, err := os.Hostname()
	if err != nil || expected == "" {
		expected = UnresolvableHost
	}
	assert.Equal(t, expected, resolveHost())
}
