package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/novelnest/internal/entities"
)

// busyTimeoutMs is how long a statement waits on a locked file before failing.
const busyTimeoutMs = 5000

// schemaModels are created in order; book_bucket_list references books.
var schemaModels = []interface{}{
	&entities.Book{},
	&entities.BucketListEntry{},
}

type Database struct {
	DB *gorm.DB
}

// DSN turns a file path into a go-sqlite3 connection string.
// Foreign keys stay off so deleting a book leaves its bucket-list entry behind.
// Values that already carry the file: scheme are returned as is.
func DSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=0", path, busyTimeoutMs)
}

// Open connects to the store without touching its schema.
func Open(path string, logLevel logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, wrap("Open", fmt.Errorf("failed to connect to database: %w", err))
	}
	return &Database{DB: db}, nil
}

// NewDatabase opens the store and ensures both tables exist.
func NewDatabase(path string) (*Database, error) {
	database, err := Open(path, logger.Warn)
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(context.Background()); err != nil {
		database.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", path)

	return database, nil
}

// EnsureSchema creates the books and book_bucket_list tables when absent.
// Existing tables are left exactly as they are, so calling it again is a no-op.
func (d *Database) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, d.DB)
}

func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	migrator := db.WithContext(ctx).Migrator()
	for _, model := range schemaModels {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return wrap("EnsureSchema", err)
		}
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
