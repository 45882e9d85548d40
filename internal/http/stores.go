package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/entities"
	"github.com/mrlokans/novelnest/internal/scheduler"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// BookGetter provides read access to a single book.
type BookGetter interface {
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
}

// BookStore is everything BooksController needs from the catalogue.
type BookStore interface {
	BookGetter
	AddBook(ctx context.Context, in books.NewBook) (*entities.Book, error)
	GetAllBooks(ctx context.Context) ([]entities.Book, error)
	SearchBooks(ctx context.Context, query string) ([]entities.Book, error)
	GetBooksByGenre(ctx context.Context, genre string) ([]entities.Book, error)
	GetGenres(ctx context.Context) ([]string, error)
	UpdateBookStatus(ctx context.Context, id uint, status entities.ReadingStatus) error
	DeleteBook(ctx context.Context, id uint) error
}

// BucketListStore manages "want to read" membership.
type BucketListStore interface {
	IsBookInBucketList(ctx context.Context, bookID uint) (bool, error)
	AddToBucketList(ctx context.Context, bookID uint) (bool, error)
	GetBucketList(ctx context.Context) ([]entities.Book, error)
	RemoveFromBucketList(ctx context.Context, bookID uint) error
	DeleteOrphanEntries(ctx context.Context) (int64, error)
}

// BookStatsStore provides the aggregates behind the insights view.
type BookStatsStore interface {
	CountBooks(ctx context.Context) (int64, error)
	GetGenreDistribution(ctx context.Context) ([]entities.GroupCount, error)
	GetStatusBreakdown(ctx context.Context) ([]entities.GroupCount, error)
}

// BucketListCounter counts listed books that still exist.
type BucketListCounter interface {
	CountEntries(ctx context.Context) (int64, error)
}

// CleanupEnqueuer schedules an orphan sweep on the task queue.
type CleanupEnqueuer interface {
	EnqueueBucketListCleanup(ctx context.Context) (string, error)
}

// TaskStatusGetter looks up the state of an enqueued task.
type TaskStatusGetter interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// CleanupStatusReporter exposes the outcome of the last scheduled orphan sweep.
type CleanupStatusReporter interface {
	LastResult() *scheduler.CleanupResult
}
