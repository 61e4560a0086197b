// Package config handles host application settings loaded from YAML
// files and environment variables. Precedence: environment variables >
// config file > defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/lodestar-app/hostkit/internal/fspath"
)

// Duration is a wrapper around time.Duration that supports YAML
// unmarshaling from human-readable strings like "5s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return errors.Wrapf(err, "invalid duration %q", value.Value)
		}
		d.Duration = parsed
		return nil
	default:
		return errors.Newf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all host integration settings.
type Config struct {
	Launch  LaunchConfig  `yaml:"launch"`
	Logging LoggingConfig `yaml:"logging"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// LaunchConfig holds auto-launch settings.
type LaunchConfig struct {
	// AtLogin is the desired login-launch state, applied on startup.
	AtLogin bool `yaml:"at_login"`
}

// LoggingConfig holds logging settings. An empty File logs to the
// console only.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MonitorConfig holds telemetry refresh settings.
type MonitorConfig struct {
	RefreshInterval Duration `yaml:"refresh_interval"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Launch: LaunchConfig{
			AtLogin: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Monitor: MonitorConfig{
			RefreshInterval: Duration{5 * time.Second},
		},
	}
}

// Load reads configuration from a YAML file and merges it over the
// defaults. If path is empty or the file does not exist, only defaults
// and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "reading config file")
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parsing config file %s", path)
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path,
// creating parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	return os.WriteFile(path, data, 0640)
}

// DefaultPath returns the conventional config file location inside the
// application's data directory. The file is not created.
func DefaultPath(appName string) (string, error) {
	p, err := fspath.DataFilePath(appName, "config.yaml")
	if err != nil {
		return "", err
	}
	return p.Text()
}

// Validate checks that the configuration is usable. A non-positive
// refresh interval cannot drive the telemetry ticker.
func (c *Config) Validate() error {
	if c.Monitor.RefreshInterval.Duration <= 0 {
		return errors.Newf("monitor refresh_interval must be positive, got %s", c.Monitor.RefreshInterval.Duration)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Malformed values are skipped.
func applyEnvOverrides(cfg *Config) {
	if raw := os.Getenv("LODESTAR_LAUNCH_AT_LOGIN"); raw != "" {
		if atLogin, err := strconv.ParseBool(raw); err == nil {
			cfg.Launch.AtLogin = atLogin
		}
	}
	if level := os.Getenv("LODESTAR_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("LODESTAR_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
	if raw := os.Getenv("LODESTAR_REFRESH_INTERVAL"); raw != "" {
		if interval, err := time.ParseDuration(raw); err == nil {
			cfg.Monitor.RefreshInterval = Duration{interval}
		}
	}
}
