// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package config loads and validates the Torchlight server configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file, then environment variables. Environment variables win.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the server.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Prediction PredictionConfig `koanf:"prediction"`
	Refresh    RefreshConfig    `koanf:"refresh"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. Use :memory: for an in-memory
	// database (tests).
	Path string `koanf:"path"`

	// MaxMemory limits DuckDB memory usage, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads sets DuckDB worker threads. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`

	// DatasetDir points at the directory holding the Olympic CSV files
	// (hosts.csv, athletes.csv, results.csv, country_locations.csv,
	// country_gdp.csv). Empty disables ingest; the database is then
	// expected to be pre-populated.
	DatasetDir string `koanf:"dataset_dir"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// PredictionConfig holds settings for the external medal prediction service.
type PredictionConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`

	// MaxRPS throttles outbound calls to the prediction service.
	// 0 disables the throttle.
	MaxRPS float64 `koanf:"max_rps"`
	Burst  int     `koanf:"burst"`
}

// RefreshConfig controls the reference-data refresher service that
// periodically reloads the GDP and location tables from the dataset
// directory.
type RefreshConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must not be negative, got %d", c.Database.Threads)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Prediction.Enabled {
		if c.Prediction.URL == "" {
			return fmt.Errorf("prediction.url must be set when prediction.enabled is true")
		}
		if _, err := url.Parse(c.Prediction.URL); err != nil {
			return fmt.Errorf("prediction.url is not a valid URL: %w", err)
		}
		if c.Prediction.MaxRPS < 0 {
			return fmt.Errorf("prediction.max_rps must not be negative, got %f", c.Prediction.MaxRPS)
		}
	}
	if c.Refresh.Enabled && c.Refresh.Interval < time.Minute {
		return fmt.Errorf("refresh.interval must be at least 1m, got %s", c.Refresh.Interval)
	}
	return nil
}

// Load loads the configuration. It is a thin alias for LoadWithKoanf so
// callers do not need to care about the loading mechanism.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
