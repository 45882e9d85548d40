// Package bucketlist provides database operations for the "want to read" list.
//
// Membership is keyed by book id. Adding a book twice is a no-op reported
// through the returned bool. New tables also carry a unique index on book_id.
package bucketlist

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/entities"
)

// Repository handles bucket-list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bucket-list repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IsBookInBucketList reports whether at least one entry references bookID.
func (r *Repository) IsBookInBucketList(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BucketListEntry{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return false, database.Wrap("IsBookInBucketList", err)
	}
	return count > 0, nil
}

// AddToBucketList inserts an entry for bookID unless one already exists.
// added is false when the book was already listed. The book itself is not
// checked for existence.
//
// The existence check is part of the INSERT, so it holds on tables created
// without the unique index on book_id as well.
func (r *Repository) AddToBucketList(ctx context.Context, bookID uint) (added bool, err error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO book_bucket_list (book_id)
		 SELECT ? WHERE NOT EXISTS (SELECT 1 FROM book_bucket_list WHERE book_id = ?)`,
		bookID, bookID,
	)
	if result.Error != nil {
		return false, database.Wrap("AddToBucketList", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetBucketList returns the listed books in the order they were added.
// Entries whose book was deleted are skipped.
func (r *Repository) GetBucketList(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Select("books.*").
		Joins("JOIN book_bucket_list ON book_bucket_list.book_id = books.id").
		Order("book_bucket_list.id ASC").
		Find(&books).Error
	if err != nil {
		return nil, database.Wrap("GetBucketList", err)
	}
	return books, nil
}

// CountEntries returns the number of listed books that still exist.
func (r *Repository) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BucketListEntry{}).
		Joins("JOIN books ON books.id = book_bucket_list.book_id").
		Count(&count).Error
	if err != nil {
		return 0, database.Wrap("CountEntries", err)
	}
	return count, nil
}

// RemoveFromBucketList deletes the entries for bookID. A book that is not
// listed is not an error.
func (r *Repository) RemoveFromBucketList(ctx context.Context, bookID uint) error {
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Delete(&entities.BucketListEntry{}).Error
	return database.Wrap("RemoveFromBucketList", err)
}

// DeleteOrphanEntries removes entries whose book no longer exists and
// returns how many were removed.
func (r *Repository) DeleteOrphanEntries(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("book_id IS NULL OR book_id NOT IN (?)", r.db.Model(&entities.Book{}).Select("id")).
		Delete(&entities.BucketListEntry{})
	if result.Error != nil {
		return 0, database.Wrap("DeleteOrphanEntries", result.Error)
	}
	return result.RowsAffected, nil
}
