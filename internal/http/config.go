package http

import (
	"github.com/mrlokans/novelnest/internal/covers"
	"github.com/mrlokans/novelnest/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database   *database.Database
	BookStore  BookStore
	StatsStore BookStatsStore

	// Bucket list
	BucketListStore   BucketListStore
	BucketListCounter BucketListCounter

	// Upload checks for cover images
	CoverValidator *covers.Validator

	// Task queue (optional). When nil, cleanup runs inline.
	CleanupEnqueuer CleanupEnqueuer
	TaskStatus      TaskStatusGetter

	// Scheduled cleanup (optional), reported on /health
	CleanupStatus CleanupStatusReporter

	// Rejects writes when true
	DemoMode bool

	// Application info
	Version string
}
