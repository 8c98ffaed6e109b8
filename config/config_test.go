package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "omnisearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "home", cfg.Search.HomeNodeID)
	assert.Equal(t, 0.4, cfg.Search.FuzzyThreshold)
	assert.Equal(t, 4, cfg.Search.PoolSize)
	assert.Equal(t, "default", cfg.Storage.TreeName)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Search, cfg.Search)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
search:
  debounce: 150ms
  fuzzyThreshold: 0.3
request:
  locale: de-de
  merchantAuthenticated: true
remote:
  faqHost: https://help.example.com/
  maxAttempts: 3
storage:
  treeName: portal
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 0.3, cfg.Search.FuzzyThreshold)
	assert.Equal(t, 4, cfg.Search.PoolSize, "unset values keep defaults")
	assert.Equal(t, "de-de", cfg.Request.Locale)
	assert.True(t, cfg.Request.MerchantAuthenticated)
	assert.Equal(t, "https://help.example.com", cfg.Remote.FAQHost)
	assert.Equal(t, 3, cfg.Remote.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, "portal", cfg.Storage.TreeName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OMNISEARCH_FAQ_HOST", "https://env.example.com")
	t.Setenv("OMNISEARCH_AUTH_TOKEN", "secret")
	t.Setenv("OMNISEARCH_DB_PATH", "/tmp/omni")
	t.Setenv("OMNISEARCH_LOCALE", "fr-fr")
	t.Setenv("OMNISEARCH_LOG_LEVEL", "debug")
	t.Setenv("OMNISEARCH_DEBOUNCE", "50ms")
	t.Setenv("OMNISEARCH_FUZZY_THRESHOLD", "0.25")

	cfg, err := Load(writeConfig(t, "remote:\n  faqHost: https://file.example.com\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Remote.FAQHost)
	assert.Equal(t, "secret", cfg.Remote.AuthToken)
	assert.Equal(t, "/tmp/omni", cfg.Storage.Path)
	assert.Equal(t, "fr-fr", cfg.Request.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 0.25, cfg.Search.FuzzyThreshold)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: [oops"))
		assert.Error(t, err)
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("OMNISEARCH_DEBOUNCE", "soon")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero debounce", func(c *Config) { c.Search.Debounce = 0 }},
		{"threshold above one", func(c *Config) { c.Search.FuzzyThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Search.FuzzyThreshold = -0.1 }},
		{"zero pool", func(c *Config) { c.Search.PoolSize = 0 }},
		{"empty home", func(c *Config) { c.Search.HomeNodeID = " " }},
		{"empty tree name", func(c *Config) { c.Storage.TreeName = "" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad remote", func(c *Config) { c.Remote.MaxAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Request.MerchantAuthenticated = true

	assert.Len(t, cfg.PipelineOptions(), 5)
	rc := cfg.RequestContext()
	assert.Equal(t, "/", rc.CurrentPath)
	assert.Equal(t, "en-us", rc.Locale)
	assert.True(t, rc.MerchantAuthenticated)
}
