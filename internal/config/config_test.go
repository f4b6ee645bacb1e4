package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.True(t, cfg.Background)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "green", cfg.Logger.Colors.Info)
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Addr)
	assert.Equal(t, 600, cfg.Serve.MaxFrame)
	assert.Equal(t, 5*time.Second, cfg.Serve.RenderTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 900
  title: Preview
seed: 42
logger:
  format: json
serve:
  rate_limit: 5
  render_timeout: 2s
`), 0o644))
	t.Setenv("FOLIO_WINDOW_HEIGHT", "700")
	t.Setenv("FOLIO_DEBUG", "true")

	v := viper.New()
	Prepare(v, path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.Window.Width)
	assert.Equal(t, 700, cfg.Window.Height, "env overrides defaults")
	assert.Equal(t, "Preview", cfg.Window.Title)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 5.0, cfg.Serve.RateLimit)
	assert.Equal(t, 40, cfg.Serve.Burst, "unset keys keep their defaults")
	assert.Equal(t, 2*time.Second, cfg.Serve.RenderTimeout)
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	v := viper.New()
	Prepare(v, "")
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "window: [1, 2"},
		{"bad format", "logger:\n  format: xml\n"},
		{"bad window", "window:\n  width: -1\n"},
		{"bad rate", "serve:\n  rate_limit: 0\n"},
		{"bad render timeout", "serve:\n  render_timeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			v := viper.New()
			Prepare(v, path)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}

	v := viper.New()
	Prepare(v, filepath.Join(dir, "absent.yaml"))
	_, err := Load(v)
	assert.Error(t, err, "an explicit config file must exist")
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Window.TPS = 0
	cfg.Logger.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.tps")
	assert.Contains(t, err.Error(), "logger.format")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_DOTENV_MARKER=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FOLIO_DOTENV_MARKER") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("FOLIO_DOTENV_MARKER"))

	require.NoError(t, os.WriteFile(path, []byte("FOLIO_DOTENV_MARKER=changed\n"), 0o644))
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("FOLIO_DOTENV_MARKER"), "existing variables win")
}
