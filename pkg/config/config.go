// Package config defines core configuration types for codewatch.
// These types are pure data structures; loading lives in yaml.go.
package config

import (
	"fmt"
	"time"
)

// SeverityConfig holds the thresholds behind the default severity
// policy: engine severities at or below ErrorMax display as errors, at
// or below WarningMax as warnings, everything else as info.
type SeverityConfig struct {
	ErrorMax   int `yaml:"error_max"`
	WarningMax int `yaml:"warning_max"`
}

// EngineConfig enables or disables one scanning engine.
type EngineConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// RemoteConfig configures the job-based remote analysis API.
type RemoteConfig struct {
	// Endpoint is the API root URL. Empty disables remote analysis.
	Endpoint string `yaml:"endpoint"`

	// MaxWait bounds how long a single analysis polls for completion.
	MaxWait time.Duration `yaml:"max_wait"`

	// RetryInterval is the fixed delay between status polls.
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// Config is the root configuration structure for codewatch.
type Config struct {
	// Severity holds the display-bucket thresholds.
	Severity SeverityConfig `yaml:"severity"`

	// Engines contains per-engine configuration keyed by engine name.
	Engines map[string]EngineConfig `yaml:"engines"`

	// Remote configures the remote analysis API.
	Remote RemoteConfig `yaml:"remote"`

	// LogLevel sets the logger verbosity.
	LogLevel string `yaml:"log_level"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Severity: SeverityConfig{ErrorMax: 2, WarningMax: 4},
		Engines:  make(map[string]EngineConfig),
		Remote: RemoteConfig{
			MaxWait:       5 * time.Minute,
			RetryInterval: time.Second,
		},
		LogLevel: "info",
	}
}

// EngineEnabled reports whether an engine should run. Engines without
// configuration default to enabled.
func (c *Config) EngineEnabled(name string) bool {
	ec, ok := c.Engines[name]
	if !ok || ec.Enabled == nil {
		return true
	}
	return *ec.Enabled
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Severity.ErrorMax < 0 {
		return fmt.Errorf("severity.error_max must not be negative, got %d", c.Severity.ErrorMax)
	}
	if c.Severity.WarningMax < c.Severity.ErrorMax {
		return fmt.Errorf("severity.warning_max (%d) must not be below severity.error_max (%d)",
			c.Severity.WarningMax, c.Severity.ErrorMax)
	}
	if c.Remote.RetryInterval <= 0 {
		return fmt.Errorf("remote.retry_interval must be positive, got %s", c.Remote.RetryInterval)
	}
	if c.Remote.MaxWait < c.Remote.RetryInterval {
		return fmt.Errorf("remote.max_wait (%s) must not be below remote.retry_interval (%s)",
			c.Remote.MaxWait, c.Remote.RetryInterval)
	}
	return nil
}
