package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shirou/gopsutil/v4/host"
	"go.yaml.in/yaml/v4"
)

// UnresolvableHost is used when no host name can be determined.
const UnresolvableHost = "UNRESOLVABLE"

// Load reads a YAML configuration file and applies defaults.
// An empty path yields the default configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// hostInfo is replaced in tests.
var hostInfo = host.Info

// resolveHost returns the local host name, preferring the host info reported
// by the OS and falling back to the kernel host name.
func resolveHost() string {
	if info, err := hostInfo(); err == nil && info.Hostname != "" {
		return info.Hostname
	} else if err != nil {
		slog.Debug("host info unavailable", "error", err)
	}

	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}

	slog.Warn("unable to resolve host name", "fallback", UnresolvableHost)
	return UnresolvableHost
}
