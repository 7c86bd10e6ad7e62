package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  host: 127.0.0.1
  port: 8080
  env: production
database:
  driver: sqlite
  url: ":memory:"
jwt:
  secret: s3cret
  ttl: 30
monitoring:
  base_delay: 10ms
  jitter: 5ms
  notifier: memory
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, 10*time.Millisecond, cfg.Monitoring.BaseDelay)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	// untouched sections keep defaults
	assert.Equal(t, 64, cfg.Monitoring.QueueSize)
	assert.True(t, cfg.Seed.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/gallery_test?sslmode=disable")
	t.Setenv("SERVER_PORT", "4001")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SEED_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.False(t, cfg.Seed.Enabled)
}

func TestMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestValidateRejectsRedisWithoutAddr(t *testing.T) {
	cfg := Default()
	cfg.Monitoring.Notifier = "redis"
	assert.Error(t, cfg.Validate())

	cfg.Monitoring.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}
