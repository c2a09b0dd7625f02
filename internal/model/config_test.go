package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.False(t, cfg.Log.Debug)
}

func TestLoadConfigEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("HABITGRID_API_URL", "https://habits.example.com/api")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://habits.example.com/api", cfg.API.BaseURL)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		API:     APIConfig{BaseURL: "http://10.0.0.5:8000/api"},
		Display: DisplayConfig{Theme: "default"},
		Log:     LogConfig{Debug: true},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveConfig(path, &AppConfig{
		API: APIConfig{BaseURL: "http://from-file:8000/api"},
	}))

	t.Setenv("HABITGRID_API_URL", "http://from-env:8000/api")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8000/api", cfg.API.BaseURL)
}
