package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanEntriesCleaner deletes bucket-list entries whose book is gone.
type OrphanEntriesCleaner interface {
	DeleteOrphanEntries(ctx context.Context) (int64, error)
}

// CleanupBucketListTask removes bucket-list entries left behind by deleted books.
type CleanupBucketListTask struct{}

// Config returns the queue configuration for bucket-list cleanup tasks.
func (t CleanupBucketListTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_bucket_list",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupBucketListProcessor creates the processor for CleanupBucketListTask.
func CleanupBucketListProcessor(cleaner OrphanEntriesCleaner) backlite.QueueProcessor[CleanupBucketListTask] {
	return func(ctx context.Context, task CleanupBucketListTask) error {
		if cleaner == nil {
			return fmt.Errorf("bucket list cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanEntries(ctx)
		if err != nil {
			return fmt.Errorf("cleanup bucket list: %w", err)
		}

		log.Printf("[TASK] Removed %d orphaned bucket list entries", deleted)
		return nil
	}
}

// NewCleanupBucketListQueue creates a backlite queue for bucket-list cleanup tasks.
func NewCleanupBucketListQueue(cleaner OrphanEntriesCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupBucketListProcessor(cleaner))
}
