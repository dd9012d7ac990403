// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, LLM) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/riwayati/internal/platform/constants"
)

// Supported relational backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported text-generation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// # Configuration Schema

// Config holds all runtime configuration for the Riwayati API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database. DatabaseURL is a postgres:// URL for the postgres
	// driver and a file path for the sqlite driver.
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL,required"`

	// MigrationPath overrides the embedded SQL migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis). Optional: without it the draft lock is process-local.
	RedisURL string `env:"REDIS_URL"`

	// Text generation provider used by the chapter drafting endpoint.
	LLM LLMConfig `envPrefix:"LLM_"`

	// DraftLockTTL bounds how long one chapter can stay locked by a generation.
	DraftLockTTL time.Duration `env:"DRAFT_LOCK_TTL"`

	// Cross-Origin Resource Sharing, comma separated.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// LLMConfig describes the upstream text-generation provider.
type LLMConfig struct {
	Provider string        `env:"PROVIDER" envDefault:"gemini"`
	APIKey   string        `env:"API_KEY"`
	BaseURL  string        `env:"BASE_URL"`
	Model    string        `env:"MODEL"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"120s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom parses configuration from an explicit variable map instead of the
// process environment. Used by tests and tooling.
func LoadFrom(environment map[string]string) (*Config, error) {
	return load(env.Options{Environment: environment})
}

func load(options env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.DraftLockTTL <= 0 {
		cfg.DraftLockTTL = constants.DefaultDraftLockTTL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config: unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of ExtraOrigins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
