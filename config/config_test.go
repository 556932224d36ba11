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
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "incumbent", cfg.TiePolicy)
	assert.Equal(t, 10*time.Minute, cfg.DecisionCacheTTL)
	assert.Equal(t, "roomsched", cfg.DatabaseName)
	assert.True(t, cfg.AuditEnabled)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roomsched.yaml")
	content := "APP_PORT: \"9090\"\nTIE_POLICY: candidate\nDECISION_CACHE_TTL: 30s\nCACHE_ENABLED: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ENV", "production")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "candidate", cfg.TiePolicy)
	assert.Equal(t, 30*time.Second, cfg.DecisionCacheTTL)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.Env = "production"
	assert.True(t, IsProduction())
	AppConfig.Env = "development"
	assert.False(t, IsProduction())
}
