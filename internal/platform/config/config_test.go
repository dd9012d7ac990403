// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/platform/config"
	"github.com/taibuivan/riwayati/internal/platform/constants"
)

/*
TestLoadFrom_Defaults verifies defaults when only the required keys are set.
*/
func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"DATABASE_URL": "postgres://localhost/riwayati",
	})
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, config.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, constants.DefaultDraftLockTTL, cfg.DraftLockTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoadFrom_Overrides verifies nested LLM settings and the sqlite driver.
*/
func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"DATABASE_DRIVER": "sqlite",
		"DATABASE_URL":    "novels.db",
		"ENVIRONMENT":     "production",
		"LLM_PROVIDER":    "openai",
		"LLM_MODEL":       "gpt-4o-mini",
		"LLM_TIMEOUT":     "45s",
		"DRAFT_LOCK_TTL":  "90s",
		"EXTRA_ORIGINS":   "https://a.example, ,https://b.example",
	})
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 90*time.Second, cfg.DraftLockTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.True(t, cfg.IsProduction())
}

/*
TestLoadFrom_Invalid covers missing and unsupported values.
*/
func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing_database_url", map[string]string{}},
		{"unknown_driver", map[string]string{"DATABASE_URL": "x", "DATABASE_DRIVER": "mysql"}},
		{"unknown_provider", map[string]string{"DATABASE_URL": "x", "LLM_PROVIDER": "markov"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(tt.vars)
			assert.Error(t, err)
		})
	}
}
