package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaults(t *testing.T) {
	loader := NewIsolatedLoader()

	cfg, err := loader.Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.CatalogDir, cfg.CatalogDir)
	assert.Equal(t, defaults.Detector.Binary, cfg.Detector.Binary)
	assert.Equal(t, defaults.Server.Port, cfg.Server.Port)
	assert.Equal(t, defaults.Mention.SupportedCodes, cfg.Mention.SupportedCodes)
}

func TestLoaderWithFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "lingua.yaml")
	content := `
catalog_dir: /opt/lingua/languages
log_level: debug
detector:
  binary: langdetect
  max_workers: 2
mention:
  similarity_threshold: 90
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o600))

	loader := NewIsolatedLoader()
	cfg, err := loader.LoadWithFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "/opt/lingua/languages", cfg.CatalogDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "langdetect", cfg.Detector.Binary)
	assert.Equal(t, 2, cfg.Detector.MaxWorkers)
	assert.InDelta(t, 90.0, cfg.Mention.SimilarityThreshold, 0.001)
	assert.Equal(t, 9090, cfg.Server.Port)

	// Unset keys keep their defaults.
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoaderWithMissingFile(t *testing.T) {
	loader := NewIsolatedLoader()
	_, err := loader.LoadWithFile("/nonexistent/lingua.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoaderWithInvalidValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "lingua.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log_level: shouting\n"), 0o600))

	loader := NewIsolatedLoader()
	_, err := loader.LoadWithFile(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoaderEnvironmentOverride(t *testing.T) {
	t.Setenv("LINGUA_DETECTOR_BINARY", "langdetect-env")

	loader := NewIsolatedLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "langdetect-env", cfg.Detector.Binary)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/lingua")
}
