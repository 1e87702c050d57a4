package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/salah?sslmode=disable")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"SERVER_ADDRESS", "MIGRATIONS_PATH", "REFERENCE_TIMEZONE", "SWEEP_INTERVAL", "SYNC_TIMEOUT", "USE_SPACES", "BACKUP_DIR", "APP_ENV", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, "Asia/Karachi", cfg.ReferenceTimezone)
	assert.Equal(t, 60*time.Second, cfg.SweepInterval)
	assert.Equal(t, 10*time.Second, cfg.SyncTimeout)
	assert.Equal(t, "./backups", cfg.BackupDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.UseSpaces)
	assert.False(t, cfg.Development())
}

func TestLoadRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")

	t.Setenv("DATABASE_URL", "postgres://localhost/salah")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("SYNC_TIMEOUT", "2500ms")
	t.Setenv("APP_ENV", "development")
	t.Setenv("REFERENCE_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 2500*time.Millisecond, cfg.SyncTimeout)
	assert.True(t, cfg.Development())
	assert.Equal(t, "UTC", cfg.ReferenceTimezone)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequired(t)
	t.Setenv("SWEEP_INTERVAL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "SWEEP_INTERVAL")

	t.Setenv("SWEEP_INTERVAL", "-1s")
	_, err = Load()
	assert.ErrorContains(t, err, "must be positive")

	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("USE_SPACES", "true")
	t.Setenv("SPACES_BUCKET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "SPACES_BUCKET")
}
