package config

import (
	"fmt"
	"time"

	"github.com/neox5/acctstat/internal/version"
)

const (
	// Prometheus defaults
	DefaultPrometheusPort = 9090
	DefaultPrometheusPath = "/metrics"

	// OTEL defaults
	DefaultOTELInterval = 10 * time.Second
	DefaultOTELHost     = "localhost"
	DefaultOTELPortGRPC = 4317
	DefaultOTELPortHTTP = 4318
	DefaultServiceName  = "acctstat"
)

// OTLP transports.
const (
	TransportGRPC = "grpc"
	TransportHTTP = "http"
)

// ExportConfig defines how metrics are exposed.
type ExportConfig struct {
	Prometheus *PrometheusExportConfig `yaml:"prometheus,omitempty"`
	OTEL       *OTELExportConfig       `yaml:"otel,omitempty"`
}

// Validate applies defaults and validates export configuration.
func (e *ExportConfig) Validate() error {
	// Default to Prometheus enabled if no exporters configured
	if e.Prometheus == nil && e.OTEL == nil {
		e.Prometheus = &PrometheusExportConfig{
			Enabled: true,
			Port:    DefaultPrometheusPort,
			Path:    DefaultPrometheusPath,
		}
		return nil
	}

	if e.Prometheus != nil {
		if err := e.Prometheus.Validate(); err != nil {
			return err
		}
	}

	if e.OTEL != nil {
		if err := e.OTEL.Validate(); err != nil {
			return err
		}
	}

	if !e.PrometheusEnabled() && !e.OTELEnabled() {
		return fmt.Errorf("at least one exporter must be enabled")
	}

	return nil
}

// PrometheusEnabled reports whether the Prometheus endpoint is served.
func (e *ExportConfig) PrometheusEnabled() bool {
	return e.Prometheus != nil && e.Prometheus.Enabled
}

// OTELEnabled reports whether metrics are pushed over OTLP.
func (e *ExportConfig) OTELEnabled() bool {
	return e.OTEL != nil && e.OTEL.Enabled
}

// PrometheusExportConfig defines Prometheus pull endpoint settings.
type PrometheusExportConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Port            int    `yaml:"port"`
	Path            string `yaml:"path"`
	InternalMetrics bool   `yaml:"internal_metrics"`
}

// Validate applies defaults and validates Prometheus configuration.
func (c *PrometheusExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Port == 0 {
		c.Port = DefaultPrometheusPort
	}
	if c.Path == "" {
		c.Path = DefaultPrometheusPath
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid prometheus port: %d", c.Port)
	}
	if c.Path[0] != '/' {
		return fmt.Errorf("invalid prometheus path: %q (must start with /)", c.Path)
	}

	return nil
}

// OTELExportConfig defines OTLP push settings.
type OTELExportConfig struct {
	Enabled   bool              `yaml:"enabled"`
	Transport string            `yaml:"transport"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	Interval  time.Duration     `yaml:"interval"`
	Resource  map[string]string `yaml:"resource,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
}

// Validate applies defaults and validates OTEL configuration.
func (c *OTELExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Transport == "" {
		c.Transport = TransportGRPC
	}
	if c.Transport != TransportGRPC && c.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport: %s (must be grpc or http)", c.Transport)
	}

	if c.Host == "" {
		c.Host = DefaultOTELHost
	}

	// Port default depends on transport
	if c.Port == 0 {
		if c.Transport == TransportGRPC {
			c.Port = DefaultOTELPortGRPC
		} else {
			c.Port = DefaultOTELPortHTTP
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid otel port: %d", c.Port)
	}

	if c.Interval == 0 {
		c.Interval = DefaultOTELInterval
	}
	if c.Interval < 0 {
		return fmt.Errorf("invalid otel interval: %s", c.Interval)
	}

	if c.Resource == nil {
		c.Resource = make(map[string]string)
	}
	if _, exists := c.Resource["service.name"]; !exists {
		c.Resource["service.name"] = DefaultServiceName
	}
	if _, exists := c.Resource["service.version"]; !exists {
		c.Resource["service.version"] = version.String()
	}

	return nil
}

// GetEndpoint returns the host:port address of the collector.
func (c *OTELExportConfig) GetEndpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
