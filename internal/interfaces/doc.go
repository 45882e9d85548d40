// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Catalogue reads and writes (internal/http/stores.go)
//   - BookStatsStore: Library statistics (internal/http/stores.go)
//   - BucketListStore: Book Bucket List membership (internal/http/stores.go)
//   - BucketListCounter: Size of the bucket list (internal/http/stores.go)
//
// ## Background Work Interfaces
//
//   - OrphanEntriesCleaner: Removes bucket list entries for deleted books
//     (internal/tasks/cleanup_bucket_list.go, internal/scheduler/bucket_list_cleanup.go)
//   - CleanupEnqueuer: Hands the sweep to the task queue (internal/http/stores.go,
//     internal/scheduler/bucket_list_cleanup.go)
//   - TaskStatusGetter: Looks up queued task state (internal/http/stores.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading sessions):
//
//  1. Create sub-package: internal/database/sessions/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register its entity in the schema list of internal/database/database.go
//
//  4. Wrap every gorm error with database.Wrap so callers can tell
//     constraint violations from an unavailable library
//
//  5. Add compile-time check:
//
//     var _ http.SessionStore = (*Repository)(nil)
//
// # Adding a New Background Task
//
//  1. Define the task type and processor in internal/tasks/
//
//     type ExportLibraryTask struct{}
//
//     func (t ExportLibraryTask) Config() backlite.QueueConfig
//
//  2. Register its queue in entrypoint.go alongside NewCleanupBucketListQueue
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
