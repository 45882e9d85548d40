package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		BucketListCleanup
		Covers
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	BucketListCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Covers struct {
		MaxSizeMB int
	}
	Demo struct {
		Enabled bool // Rejects every write to the library
	}
)

// loadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win over the file; a missing file is fine.
func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: could not load %s: %v", path, err)
	}
}

func NewConfig() *Config {
	return NewConfigFromEnvFile(DefaultEnvFile)
}

// NewConfigFromEnvFile loads envFile (if present) and then reads the environment.
func NewConfigFromEnvFile(envFile string) *Config {
	loadDotEnv(envFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Orphaned bucket-list entries are swept nightly
	v.SetDefault("bucket_list_cleanup_enabled", true)
	v.SetDefault("bucket_list_cleanup_schedule", "0 3 * * *")

	v.SetDefault("max_cover_size_mb", DefaultMaxCoverSizeMB)
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		BucketListCleanup: BucketListCleanup{
			Enabled:  v.GetBool("BUCKET_LIST_CLEANUP_ENABLED"),
			Schedule: v.GetString("BUCKET_LIST_CLEANUP_SCHEDULE"),
		},
		Covers: Covers{
			MaxSizeMB: v.GetInt("MAX_COVER_SIZE_MB"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
