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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigSQLite(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
database:
  driver: sqlite
  path: `+filepath.Join(t.TempDir(), "db", "test.db")+`
flow:
  lock_ttl_seconds: 3
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 3*time.Second, cfg.Flow.LockTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath)
	assert.DirExists(t, filepath.Dir(cfg.Database.Path))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: mysql
  host: db.internal
  dbname: emotest
`)
	t.Setenv("DATABASE_HOST", "override.internal")
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := map[string]string{
		"unknown driver":     "database:\n  driver: oracle\n",
		"mysql without host": "database:\n  driver: mysql\n",
		"lock without redis": "database:\n  driver: sqlite\n  path: " + filepath.Join(t.TempDir(), "x.db") + "\nflow:\n  lock_submissions: true\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
