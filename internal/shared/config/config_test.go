package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInitPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "config.yaml", `
server:
  port: 8080
comicapi:
  base_url: https://comicvine.gamespot.com/api
  cache_ttl: 5m
  rate_limit:
    requests: 200
`)
	envPath := writeFile(t, dir, ".env", "SERVER_PORT=9999\n")

	cfg, err := Init(Options{YAMLPath: yamlPath, EnvPath: envPath})
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Source())
	assert.Equal(t, 8080, cfg.GetInt("server.port"))
	assert.Equal(t, "https://comicvine.gamespot.com/api", cfg.GetString("comicapi.base_url"))
	assert.Equal(t, 5*time.Minute, cfg.GetDuration("comicapi.cache_ttl"))
	assert.Equal(t, 200, cfg.GetInt("comicapi.rate_limit.requests"))
	assert.True(t, cfg.IsSet("server.port"))
	assert.False(t, cfg.IsSet("comicapi.api_key"))
}

func TestInitFallsBackToEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "LOGGING_LEVEL=debug\n")

	cfg, err := Init(Options{
		YAMLPath: filepath.Join(dir, "missing.yaml"),
		EnvPath:  envPath,
	})
	require.NoError(t, err)

	assert.Equal(t, "env", cfg.Source())
	assert.Equal(t, "debug", cfg.GetString("logging_level"))
}

func TestInitFailsWithoutAnyFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Init(Options{
		YAMLPath: filepath.Join(dir, "missing.yaml"),
		EnvPath:  filepath.Join(dir, "missing.env"),
	})
	assert.Error(t, err)
}

func TestInitRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "config.yaml", "server: [unbalanced\n")

	_, err := Init(Options{YAMLPath: yamlPath})
	assert.Error(t, err)
}
