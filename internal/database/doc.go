// Package database provides the data access layer for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and schema creation
//	├── errors.go        # StorageError and driver error classification
//	├── books/           # Book CRUD, search and aggregate queries
//	└── bucketlist/      # "Want to read" membership
//
// # Schema
//
// EnsureSchema creates the two tables when they are missing and never alters
// an existing one:
//
//	books(id, title NOT NULL, author NOT NULL, genre, year, rating, status DEFAULT 'Unread', image)
//	book_bucket_list(id, book_id REFERENCES books(id))
//
// book_bucket_list.book_id carries a unique index. Foreign keys are not
// enforced on the connection, so deleting a book leaves its entry dangling
// until bucketlist.Repository.DeleteOrphanEntries runs.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	bucketRepo := bucketlist.NewRepository(db.DB)
//
//	book, err := booksRepo.AddBook(ctx, books.NewBook{Title: "Dune", Author: "Frank Herbert"})
//	added, err := bucketRepo.AddToBucketList(ctx, book.ID)
//
// # Errors
//
// Every repository failure is a *StorageError whose Kind is either
// ErrStorageUnavailable or ErrConstraintViolation. Updating or deleting an id
// that does not exist is not an error.
package database
