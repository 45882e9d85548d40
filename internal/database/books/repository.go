// Package books provides database operations for the book catalogue.
//
// This package implements the http.BookStore and http.BookStatsStore interfaces
// and backs the catalogue commands in internal/cli.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.AddBook(ctx, books.NewBook{Title: "Dune", Author: "Frank Herbert"})
//	all, err := repo.GetAllBooks(ctx)
package books

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NewBook holds the fields supplied when a book is catalogued.
// Nil pointers are stored as NULL.
type NewBook struct {
	Title  string
	Author string
	Genre  *string
	Year   *int
	Rating *float64
	Status entities.ReadingStatus
	Image  []byte
}

// AddBook inserts one book and returns it with its assigned id.
// Title, author and status are stored as given; an empty status becomes Unread.
func (r *Repository) AddBook(ctx context.Context, in NewBook) (*entities.Book, error) {
	status := in.Status
	if status == "" {
		status = entities.StatusUnread
	}

	book := &entities.Book{
		Title:  in.Title,
		Author: in.Author,
		Genre:  in.Genre,
		Year:   in.Year,
		Rating: in.Rating,
		Status: status,
		Image:  in.Image,
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, database.Wrap("AddBook", err)
	}
	return book, nil
}

// GetAllBooks returns every book in insertion order.
func (r *Repository) GetAllBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, database.Wrap("GetAllBooks", err)
	}
	return books, nil
}

// GetBookByID returns database.ErrBookNotFound when no row has that id.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrBookNotFound
	}
	if err != nil {
		return nil, database.Wrap("GetBookByID", err)
	}
	return &book, nil
}

// SearchBooks matches query case-insensitively against title or author.
// An empty query returns every book. Matching happens in Go because SQLite's
// LOWER() only folds ASCII letters.
func (r *Repository) SearchBooks(ctx context.Context, query string) ([]entities.Book, error) {
	all, err := r.GetAllBooks(ctx)
	if err != nil {
		return nil, database.Wrap("SearchBooks", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	matched := make([]entities.Book, 0, len(all))
	for _, b := range all {
		if containsFold(b.Title, query) || containsFold(b.Author, query) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// containsFold reports whether lowered is a substring of s, ignoring case.
func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}

// GetBooksByGenre returns books whose genre equals genre exactly.
func (r *Repository) GetBooksByGenre(ctx context.Context, genre string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Where("genre = ?", genre).Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, database.Wrap("GetBooksByGenre", err)
	}
	return books, nil
}

// GetGenres returns the distinct non-empty genres, sorted.
func (r *Repository) GetGenres(ctx context.Context) ([]string, error) {
	var genres []string
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Where("genre IS NOT NULL AND genre != ''").
		Order("genre ASC").
		Distinct().
		Pluck("genre", &genres).Error
	if err != nil {
		return nil, database.Wrap("GetGenres", err)
	}
	return genres, nil
}

// UpdateBookStatus overwrites the status of one book. A missing id is not an error.
func (r *Repository) UpdateBookStatus(ctx context.Context, id uint, status entities.ReadingStatus) error {
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Where("id = ?", id).
		Update("status", status).Error
	return database.Wrap("UpdateBookStatus", err)
}

// DeleteBook removes a book. Bucket-list entries pointing at it are kept.
// A missing id is not an error.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&entities.Book{}, id).Error
	return database.Wrap("DeleteBook", err)
}

// CountBooks returns the number of catalogued books.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, database.Wrap("CountBooks", err)
	}
	return count, nil
}

// GetGenreDistribution counts books per genre, largest first.
// Books without a genre are left out.
func (r *Repository) GetGenreDistribution(ctx context.Context) ([]entities.GroupCount, error) {
	var counts []entities.GroupCount
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Select("genre AS label, COUNT(*) AS count").
		Where("genre IS NOT NULL AND genre != ''").
		Group("genre").
		Order("count DESC, label ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, database.Wrap("GetGenreDistribution", err)
	}
	return counts, nil
}

// GetStatusBreakdown counts books per reading status. NULL or empty status counts as Unread.
func (r *Repository) GetStatusBreakdown(ctx context.Context) ([]entities.GroupCount, error) {
	var counts []entities.GroupCount
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Select("COALESCE(NULLIF(status, ''), ?) AS label, COUNT(*) AS count", string(entities.StatusUnread)).
		Group("label").
		Order("count DESC, label ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, database.Wrap("GetStatusBreakdown", err)
	}
	return counts, nil
}
