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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
jwt:
  secret: file-secret
database:
  host: db.internal
  name: care
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "Asia/Colombo", cfg.Calendar.TimeZone)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Contains(t, cfg.Database.DSN(), "dbname=care")
}

func TestLoadConfig_SecretsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: file-secret
`)
	t.Setenv("HEALTHAPP_JWT_SECRET", "env-secret")
	t.Setenv("HEALTHAPP_DB_PASSWORD", "s3cret")
	t.Setenv("HEALTHAPP_CALENDAR_CLIENT_SECRET", "client-secret")
	t.Setenv("HEALTHAPP_CALENDAR_REFRESH_TOKEN", "refresh-token")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "client-secret", cfg.Calendar.ClientSecret)
	assert.Equal(t, "refresh-token", cfg.Calendar.RefreshToken)
	assert.Equal(t, "https://oauth2.googleapis.com/token", cfg.Calendar.TokenURL)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
