package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks the variables Load reads so ambient values from the
// test environment cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "BASE_DIR", "SECRET_KEY", "PASSWORD",
		"ACCESS_TOKEN_EXPIRE_MINUTES", "REFRESH_TOKEN_EXPIRE_DAYS",
		"CORS_ORIGINS", "LOG_DIR", "LOG_MAX_FILES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "images", cfg.BaseDir)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 10, cfg.LogMaxFiles)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_DIR", "/srv/images")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/srv/images", cfg.BaseDir)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
}

func TestConfigFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\nbase_dir: /data/images\n"), 0644))

	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9000")

	cfg, err := Load()

	require.NoError(t, err)
	// File values win over env values
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/data/images", cfg.BaseDir)
	// Fields the file does not set keep their env/default values
	assert.Equal(t, "dev", cfg.Environment)
}

func TestConfigFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0644))

	t.Setenv("CONFIG_FILE", path)

	_, err := Load()

	assert.Error(t, err)
}
