package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 8, cfg.SweepConcurrency)
	assert.Equal(t, 200, cfg.SweepBatchSize)
	assert.False(t, cfg.R2Enabled())
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nJWT_SECRET=s3cret\nSWEEP_CONCURRENCY=2\nCATALOG_CACHE_TTL=30s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.SweepConcurrency)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\n"), 0o600))
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestValidate_RejectsZeroConcurrency(t *testing.T) {
	cfg := Config{SweepConcurrency: 0, SweepBatchSize: 10}
	assert.Error(t, cfg.Validate())
}
