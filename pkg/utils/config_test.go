package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutEnvFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "logs/", cfg.App.LogPath)
	assert.Equal(t, "http://localhost:5173", cfg.App.CORSOrigin)
	assert.Equal(t, 1, cfg.JWT.ExpiryHours)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "http://www.omdbapi.com", cfg.OMDB.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.OMDB.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.OMDB.CacheTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.App.SeedDefaultUser)
	assert.False(t, cfg.App.TrustProxy)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nPORT=9090\nDB_HOST=db.local\nREDIS_ADDR=localhost:6379\nSEED_DEFAULT_USER=true\nTRUST_PROXY=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.App.SeedDefaultUser)
	assert.True(t, cfg.App.TrustProxy)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=9090\n"), 0o600))
	t.Setenv("PORT", "7070")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
