package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/novelnest/internal/entities"
)

// setupTestDB creates a fresh test database with the schema in place
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "library.db")
	db, err := Open(dbPath, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))

	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/library.db?_busy_timeout=5000&_foreign_keys=0", DSN("/tmp/library.db"))
	assert.Equal(t, "file:mem?mode=memory&cache=shared", DSN("file:mem?mode=memory&cache=shared"))
}

func memoryPath() string {
	return "file:library_" + uuid.NewString() + "?mode=memory&cache=shared"
}

func TestOpen_InMemoryLibrariesAreIsolated(t *testing.T) {
	ctx := context.Background()

	first, err := Open(memoryPath(), logger.Silent)
	require.NoError(t, err)
	defer first.Close()
	second, err := Open(memoryPath(), logger.Silent)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.EnsureSchema(ctx))
	require.NoError(t, second.EnsureSchema(ctx))

	require.NoError(t, first.DB.Create(&entities.Book{Title: "Dune", Author: "Frank Herbert"}).Error)

	var n int64
	require.NoError(t, first.DB.Model(&entities.Book{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, second.DB.Model(&entities.Book{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEnsureSchema_CreatesTables(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assert.True(t, db.DB.Migrator().HasTable("books"))
	assert.True(t, db.DB.Migrator().HasTable("book_bucket_list"))
	assert.True(t, db.DB.Migrator().HasColumn(&entities.Book{}, "image"))
	assert.True(t, db.DB.Migrator().HasColumn(&entities.BucketListEntry{}, "book_id"))
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Exec("INSERT INTO books (title, author) VALUES (?, ?)", "Dune", "Frank Herbert").Error)

	require.NoError(t, db.EnsureSchema(context.Background()))
	require.NoError(t, db.EnsureSchema(context.Background()))

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSchema_StatusDefaultsToUnread(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Exec("INSERT INTO books (title, author) VALUES (?, ?)", "Dune", "Frank Herbert").Error)

	var status string
	require.NoError(t, db.DB.Raw("SELECT status FROM books LIMIT 1").Scan(&status).Error)
	assert.Equal(t, "Unread", status)
}

func TestEnsureSchema_LeavesExistingTableAlone(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	db, err := Open(dbPath, logger.Silent)
	require.NoError(t, err)
	defer db.Close()

	legacy := `CREATE TABLE books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		genre TEXT,
		year INTEGER,
		rating FLOAT,
		status TEXT DEFAULT 'Unread',
		image BLOB,
		shelf TEXT
	)`
	require.NoError(t, db.DB.Exec(legacy).Error)

	require.NoError(t, db.EnsureSchema(context.Background()))

	assert.True(t, db.DB.Migrator().HasColumn(&entities.Book{}, "shelf"))
	assert.True(t, db.DB.Migrator().HasTable("book_bucket_list"))
}

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable("books"))
	assert.FileExists(t, dbPath)
}

func TestWrap_ClassifiesConstraintViolation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := Wrap("AddBook", db.DB.Exec("INSERT INTO books (title, author) VALUES (NULL, ?)", "Anonymous").Error)
	require.Error(t, err)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "AddBook", se.Op)
	assert.True(t, IsConstraintViolation(err))
	assert.False(t, IsStorageUnavailable(err))
}

func TestWrap_ClassifiesMissingTableAsUnavailable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Exec("DROP TABLE books").Error)

	var books []entities.Book
	err := Wrap("GetAllBooks", db.DB.Find(&books).Error)
	require.Error(t, err)
	assert.True(t, IsStorageUnavailable(err))
	assert.Contains(t, err.Error(), "GetAllBooks")
}

func TestWrap_ClosedHandleIsUnavailable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	cleanup()

	var books []entities.Book
	err := Wrap("GetAllBooks", db.DB.Find(&books).Error)
	require.Error(t, err)
	assert.True(t, IsStorageUnavailable(err))
}

func TestWrap_NilAndAlreadyWrapped(t *testing.T) {
	assert.NoError(t, Wrap("Noop", nil))

	inner := &StorageError{Op: "Inner", Kind: ErrConstraintViolation, Err: errors.New("boom")}
	err := Wrap("Outer", inner)
	assert.Same(t, inner, err)
}
