package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.True(t, cfg.Headless)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().BaseURL, cfg.BaseURL)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shopcheck.yaml")
	yml := `
base_url: http://localhost:8080
headless: false
workers: 2
retries: 0
axe:
  threshold: critical
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, "critical", cfg.Axe.Threshold)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().TimeoutSeconds, cfg.TimeoutSeconds)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shopcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://from-file\n"), 0o644))

	t.Setenv("SHOPCHECK_BASE_URL", "http://from-env")
	t.Setenv("SHOPCHECK_RETRIES", "3")
	t.Setenv("HEADLESS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.BaseURL)
	assert.Equal(t, 3, cfg.Retries)
	assert.False(t, cfg.Headless)
}

func TestApplyEnv_SlowMoAndAxeScriptURL(t *testing.T) {
	t.Setenv("SHOPCHECK_SLOW_MO_MS", "250")
	t.Setenv("SHOPCHECK_AXE_SCRIPT_URL", "https://cdn.example/axe.min.js")

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.SlowMoMS)
	assert.Equal(t, "https://cdn.example/axe.min.js", cfg.Axe.ScriptURL)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative retries", func(c *Config) { c.Retries = -1 }},
		{"bogus threshold", func(c *Config) { c.Axe.Threshold = "fatal" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRunDir_CreatesNestedDir(t *testing.T) {
	cfg := Default()
	cfg.ArtifactDir = filepath.Join(t.TempDir(), "artifacts")

	dir, err := cfg.RunDir("run-1234")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
