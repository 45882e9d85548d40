package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfigFromEnvFile("")

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
	assert.True(t, cfg.BucketListCleanup.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.BucketListCleanup.Schedule)
	assert.Equal(t, DefaultMaxCoverSizeMB, cfg.Covers.MaxSizeMB)
	assert.False(t, cfg.Demo.Enabled)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/data/books.db")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("BUCKET_LIST_CLEANUP_SCHEDULE", "*/15 * * * *")
	t.Setenv("TASK_RELEASE_AFTER", "30s")
	t.Setenv("DEMO_MODE", "true")

	cfg := NewConfigFromEnvFile("")

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/data/books.db", cfg.Database.Path)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, "*/15 * * * *", cfg.BucketListCleanup.Schedule)
	assert.Equal(t, 30*time.Second, cfg.Tasks.ReleaseAfter)
	assert.True(t, cfg.Demo.Enabled)
}

func TestNewConfig_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MAX_COVER_SIZE_MB=12\nHOST=127.0.0.1\n"), 0644))

	// Registered so the values loaded from the file are unset afterwards
	t.Setenv("MAX_COVER_SIZE_MB", "")
	t.Setenv("HOST", "")
	os.Unsetenv("MAX_COVER_SIZE_MB")
	os.Unsetenv("HOST")

	cfg := NewConfigFromEnvFile(envFile)

	assert.Equal(t, 12, cfg.Covers.MaxSizeMB)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
}

func TestNewConfig_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=1111\n"), 0644))
	t.Setenv("PORT", "2222")

	cfg := NewConfigFromEnvFile(envFile)

	assert.Equal(t, int32(2222), cfg.HTTP.Port)
}

func TestNewConfig_MissingEnvFile(t *testing.T) {
	cfg := NewConfigFromEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	assert.Equal(t, int32(8188), cfg.HTTP.Port)
}
