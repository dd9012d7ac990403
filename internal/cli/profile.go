// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix namespaces the variables that override the profile file.
const EnvPrefix = "RIWAYATI_"

const defaultServer = "http://localhost:3000"

// Profile is the CLI's persistent configuration.
//
// Precedence, lowest first: built-in defaults, the TOML file, RIWAYATI_*
// environment variables, command-line flags.
type Profile struct {
	Server  string `toml:"server"  env:"SERVER"`
	Timeout string `toml:"timeout" env:"TIMEOUT"`

	// Format is the default export format (doc, html or epub).
	Format string `toml:"format" env:"FORMAT"`

	// OutputDir is where exported books are written.
	OutputDir string `toml:"output_dir" env:"OUTPUT_DIR"`
}

// DefaultProfilePath returns <user config dir>/riwayati/config.toml.
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "riwayati.toml"
	}
	return filepath.Join(dir, "riwayati", "config.toml")
}

/*
LoadProfile reads the TOML file at path and applies environment overrides.

A missing file is not an error. environment replaces the process environment
when non-nil.
*/
func LoadProfile(path string, environment map[string]string) (*Profile, error) {
	profile := &Profile{
		Server:    defaultServer,
		Timeout:   "30s",
		Format:    "doc",
		OutputDir: ".",
	}

	// 1. File
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, profile); err != nil {
			return nil, fmt.Errorf("cli: parsing profile %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("cli: reading profile: %w", err)
	}

	// 2. Environment
	options := env.Options{Prefix: EnvPrefix, Environment: environment}
	if err := env.ParseWithOptions(profile, options); err != nil {
		return nil, fmt.Errorf("cli: parsing environment: %w", err)
	}

	if _, err := profile.RequestTimeout(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Save writes the profile as TOML, creating the directory if needed.
func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cli: creating profile directory: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("cli: encoding profile: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// RequestTimeout parses Timeout.
func (p *Profile) RequestTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(p.Timeout)
	if err != nil || timeout <= 0 {
		return 0, fmt.Errorf("cli: invalid timeout %q", p.Timeout)
	}
	return timeout, nil
}
