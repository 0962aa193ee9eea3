package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() reads .xml2rst.yml and .xml2rst.yaml from the root directory
// - Load() reads an explicit config file and fails when it is missing
// - Environment variables override config file values and defaults
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects empty output dir, negative debounce, bad globs, unknown log levels
// - Validate() reports multiple errors together

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, ".", cfg.Output.Dir)
	assert.True(t, cfg.Output.Atomic)
	assert.False(t, cfg.Output.CreateDirs)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce())
	assert.Equal(t, []string{"**/*.h"}, cfg.Headers.Patterns)
	assert.Contains(t, cfg.Headers.IgnoreIdentifiers, "OB_EXPORT")
	assert.Equal(t, "info", cfg.Log.Level)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir(), "").Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsConfigFromRootDir(t *testing.T) {
	for _, name := range []string{".xml2rst.yml", ".xml2rst.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			content := `
output:
  dir: site
  atomic: false
  create_dirs: true
watch:
  debounce_ms: 250
headers:
  patterns: ["h/*.h"]
log:
  level: debug
`
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))

			cfg, err := NewLoader(dir, "").Load()
			require.NoError(t, err)

			assert.Equal(t, "site", cfg.Output.Dir)
			assert.False(t, cfg.Output.Atomic)
			assert.True(t, cfg.Output.CreateDirs)
			assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce())
			assert.Equal(t, []string{"h/*.h"}, cfg.Headers.Patterns)
			assert.Equal(t, "debug", cfg.Log.Level)

			// Unset keys keep their defaults
			assert.Equal(t, Default().Headers.IgnoreIdentifiers, cfg.Headers.IgnoreIdentifiers)
		})
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: out\n"), 0644))

	cfg, err := NewLoader(t.TempDir(), path).Load()
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)

	_, err = NewLoader(dir, filepath.Join(dir, "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".xml2rst.yml"), []byte("output:\n  dir: from-file\n"), 0644))

	t.Setenv("XML2RST_OUTPUT_DIR", "from-env")
	t.Setenv("XML2RST_OUTPUT_CREATE_DIRS", "true")
	t.Setenv("XML2RST_LOG_LEVEL", "warn")

	cfg, err := NewLoader(dir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Output.Dir)
	assert.True(t, cfg.Output.CreateDirs)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".xml2rst.yml"), []byte("output: [unclosed\n"), 0644))

	_, err := NewLoader(dir, "").Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".xml2rst.yml"), []byte("log:\n  level: loud\n"), 0644))

	_, err := NewLoader(dir, "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty output dir", func(c *Config) { c.Output.Dir = "  " }, ErrEmptyOutputDir},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, ErrInvalidDebounce},
		{"bad glob", func(c *Config) { c.Headers.Patterns = []string{"[h"} }, ErrInvalidPattern},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }, ErrInvalidLogLevel},
		{"zero debounce is allowed", func(c *Config) { c.Watch.DebounceMS = 0 }, nil},
		{"upper case level is allowed", func(c *Config) { c.Log.Level = "DEBUG" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = ""
	cfg.Log.Level = "nope"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "output.dir is required")
	assert.Contains(t, err.Error(), "invalid log level")
}
