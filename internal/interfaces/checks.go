package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/database/bucketlist"
	"github.com/mrlokans/novelnest/internal/http"
	"github.com/mrlokans/novelnest/internal/scheduler"
	"github.com/mrlokans/novelnest/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Catalogue
var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookGetter = (*books.Repository)(nil)
var _ http.BookStatsStore = (*books.Repository)(nil)

// Bucket list
var _ http.BucketListStore = (*bucketlist.Repository)(nil)
var _ http.BucketListCounter = (*bucketlist.Repository)(nil)
var _ tasks.OrphanEntriesCleaner = (*bucketlist.Repository)(nil)
var _ scheduler.OrphanEntriesCleaner = (*bucketlist.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.CleanupEnqueuer = (*tasks.Client)(nil)
var _ http.TaskStatusGetter = (*tasks.Client)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
var _ http.CleanupStatusReporter = (*scheduler.BucketListCleanupScheduler)(nil)
