package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		// A named config file that does not exist is an error; load
		// defaults the discovery way instead.
		cfg, err = Load("")
	}
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.API.BaseURL)
	assert.NotEmpty(t, cfg.API.FallbackURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Reader.AutoHideDelay)
	assert.True(t, filepath.IsAbs(cfg.Database.Path))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := defaultConfig()
	cfg.API.BaseURL = "https://example.test/api"
	cfg.Reader.AutoHideDelay = 5 * time.Second
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api", loaded.API.BaseURL)
	assert.Equal(t, 5*time.Second, loaded.Reader.AutoHideDelay)
}

func TestGenerateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, GenerateDefaultConfig(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "x.db"), expandPath("~/x.db"))
	assert.Equal(t, "", expandPath(""))
	assert.True(t, filepath.IsAbs(expandPath("relative.db")))
}
