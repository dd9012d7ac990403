// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/cli"
)

/*
TestLoadProfile_Precedence verifies defaults, then file, then environment.
*/
func TestLoadProfile_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// 1. Defaults when the file is missing
	profile, err := cli.LoadProfile(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", profile.Server)
	assert.Equal(t, "doc", profile.Format)

	// 2. File
	require.NoError(t, os.WriteFile(path, []byte(`
server = "http://books.local:8080"
timeout = "5s"
format = "epub"
`), 0o600))

	profile, err = cli.LoadProfile(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "http://books.local:8080", profile.Server)
	assert.Equal(t, "epub", profile.Format)
	timeout, err := profile.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)

	// 3. Environment
	profile, err = cli.LoadProfile(path, map[string]string{
		"RIWAYATI_SERVER":     "http://env.local",
		"RIWAYATI_OUTPUT_DIR": "/tmp/books",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://env.local", profile.Server)
	assert.Equal(t, "/tmp/books", profile.OutputDir)
	assert.Equal(t, "epub", profile.Format)
}

/*
TestLoadProfile_Invalid covers malformed TOML and timeouts.
*/
func TestLoadProfile_Invalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("server = "), 0o600))
	_, err := cli.LoadProfile(broken, map[string]string{})
	assert.Error(t, err)

	_, err = cli.LoadProfile(filepath.Join(dir, "missing.toml"), map[string]string{"RIWAYATI_TIMEOUT": "soon"})
	assert.Error(t, err)
}

/*
TestProfile_SaveRoundTrip verifies a saved profile loads back unchanged.
*/
func TestProfile_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	original := &cli.Profile{Server: "http://x", Timeout: "12s", Format: "html", OutputDir: "books"}
	require.NoError(t, original.Save(path))

	loaded, err := cli.LoadProfile(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
