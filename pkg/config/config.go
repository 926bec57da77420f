// Package config provides the configuration system for spawnpool.
// It defines a single Config structure covering logging, metrics, and
// per-template pool prewarming, plus a YAML loader with environment
// variable substitution.
//
// Example usage:
//
//	cfg := config.Default()
//	cfg.Prewarm["enemy/grunt"] = 16
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

// Config is the unified configuration for a registry and its surroundings.
type Config struct {
	// Logging controls the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Metrics controls Prometheus metrics collection
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Pools holds pool-level policy applied to every pool
	Pools PoolConfig `yaml:"pools" json:"pools"`

	// Prewarm maps template identifiers to starting sizes; pools for these
	// templates are created eagerly at startup instead of on first acquire
	Prewarm map[string]int `yaml:"prewarm" json:"prewarm"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	// Level is the minimum level emitted (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Encoding selects the output format (json or console)
	Encoding string `yaml:"encoding" json:"encoding"`
	// Development enables human-friendly console output
	Development bool `yaml:"development" json:"development"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Enabled activates per-pool Prometheus collectors
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// PoolConfig contains pool-level policy.
type PoolConfig struct {
	// DefaultStartingSize is the starting size used when a prewarm entry
	// does not name a template (implicit pools still start at 1)
	DefaultStartingSize int `yaml:"default_starting_size" json:"default_starting_size"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Pools: PoolConfig{
			DefaultStartingSize: 0,
		},
		Prewarm: make(map[string]int),
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "invalid log level %q", c.Logging.Level)
	}

	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "invalid log encoding %q", c.Logging.Encoding)
	}

	if c.Pools.DefaultStartingSize < 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"default starting size must be >= 0, got %d", c.Pools.DefaultStartingSize)
	}

	for template, size := range c.Prewarm {
		if template == "" {
			return errors.New(errors.ErrorTypeConfig, "prewarm template must not be empty")
		}
		if size < 0 {
			return errors.Newf(errors.ErrorTypeConfig,
				"prewarm size for %q must be >= 0, got %d", template, size)
		}
	}

	return nil
}
