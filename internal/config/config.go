package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Host    string        `yaml:"host"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Export  ExportConfig  `yaml:"export"`
	Monitor MonitorConfig `yaml:"monitor"`
	Log     LogConfig     `yaml:"log"`
}

// Validate applies defaults and validates all sections.
func (c *Config) Validate() error {
	if c.Host == "" {
		c.Host = resolveHost()
	}

	if err := c.Ingest.Validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := c.Monitor.Validate(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

const (
	DefaultDataPath         = "/metrics"
	DefaultPollInterval     = 1 * time.Second
	DefaultReadLockInterval = 250 * time.Millisecond
	DefaultWorkers          = 4
)

// IngestConfig defines where dump files are picked up and how they are processed.
type IngestConfig struct {
	DataPath         string        `yaml:"data_path"`
	PollInterval     time.Duration `yaml:"poll_interval"`
	ReadLockInterval time.Duration `yaml:"read_lock_interval"`
	Workers          int           `yaml:"workers"`
	Archive          *bool         `yaml:"archive,omitempty"`
}

// Validate applies defaults and validates ingest configuration.
func (c *IngestConfig) Validate() error {
	if c.DataPath == "" {
		c.DataPath = DefaultDataPath
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.ReadLockInterval == 0 {
		c.ReadLockInterval = DefaultReadLockInterval
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Archive == nil {
		archive := true
		c.Archive = &archive
	}

	if c.PollInterval < 0 {
		return fmt.Errorf("invalid poll interval: %s", c.PollInterval)
	}
	if c.ReadLockInterval < 0 {
		return fmt.Errorf("invalid read lock interval: %s", c.ReadLockInterval)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}

	return nil
}

// ArchiveEnabled reports whether processed files are moved to the done directory.
// Otherwise they are deleted.
func (c *IngestConfig) ArchiveEnabled() bool {
	return c.Archive == nil || *c.Archive
}

const DefaultMonitorInterval = 5 * time.Second

// MonitorConfig controls the self resource monitor.
type MonitorConfig struct {
	Enabled  *bool         `yaml:"enabled,omitempty"`
	Interval time.Duration `yaml:"interval"`
}

// Validate applies defaults and validates monitor configuration.
func (c *MonitorConfig) Validate() error {
	if c.Enabled == nil {
		enabled := true
		c.Enabled = &enabled
	}
	if c.Interval == 0 {
		c.Interval = DefaultMonitorInterval
	}
	if c.Interval < 0 {
		return fmt.Errorf("invalid interval: %s", c.Interval)
	}
	return nil
}

// IsEnabled reports whether the monitor runs.
func (c *MonitorConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogConfig defines the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate applies defaults and validates log configuration.
func (c *LogConfig) Validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = LogFormatText
	}

	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", c.Level)
	}

	switch c.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid format: %s (must be text or json)", c.Format)
	}

	return nil
}
