package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/database/bucketlist"
	"github.com/mrlokans/novelnest/internal/entities"
)

// SetStatusCommand changes the reading status of one book.
type SetStatusCommand struct {
	DatabasePath string
	BookID       uint
	Status       entities.ReadingStatus
	Out          io.Writer
}

func NewSetStatusCommand() *SetStatusCommand {
	return &SetStatusCommand{}
}

func (cmd *SetStatusCommand) ParseFlags(args []string) error {
	var (
		id     uint
		status string
	)
	fs := newFlagSet("set-status", "-id <book id> -status <status>",
		"Set the reading status of a book.",
		&cmd.DatabasePath)
	fs.UintVar(&id, "id", 0, "Book id (required)")
	fs.StringVar(&status, "status", "", "Unread, Reading or Completed (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	parsed, err := parseStatus(status)
	if err != nil {
		return err
	}
	cmd.BookID = id
	cmd.Status = parsed
	return nil
}

func (cmd *SetStatusCommand) Run() error {
	out := outOrStdout(cmd.Out)
	ctx := context.Background()

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	book, err := repo.GetBookByID(ctx, cmd.BookID)
	if err != nil {
		return describeLookupError(cmd.BookID, err)
	}
	if err := repo.UpdateBookStatus(ctx, cmd.BookID, cmd.Status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	fmt.Fprintf(out, "'%s' is now %s\n", book.Title, cmd.Status)
	return nil
}

// DeleteBookCommand removes a book from the library.
type DeleteBookCommand struct {
	DatabasePath string
	BookID       uint
	Out          io.Writer
}

func NewDeleteBookCommand() *DeleteBookCommand {
	return &DeleteBookCommand{}
}

func (cmd *DeleteBookCommand) ParseFlags(args []string) error {
	fs := newFlagSet("delete-book", "-id <book id>",
		"Delete a book. Its bucket list entry, if any, is left for cleanup-bucket-list.",
		&cmd.DatabasePath)
	fs.UintVar(&cmd.BookID, "id", 0, "Book id (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BookID == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *DeleteBookCommand) Run() error {
	out := outOrStdout(cmd.Out)
	ctx := context.Background()

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	book, err := repo.GetBookByID(ctx, cmd.BookID)
	if err != nil {
		return describeLookupError(cmd.BookID, err)
	}
	if err := repo.DeleteBook(ctx, cmd.BookID); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	fmt.Fprintf(out, "'%s' deleted\n", book.Title)
	return nil
}

// BucketListCommand adds a book to, or removes it from, the Book Bucket List.
type BucketListCommand struct {
	DatabasePath string
	AddID        uint
	RemoveID     uint
	Out          io.Writer
}

func NewBucketListCommand() *BucketListCommand {
	return &BucketListCommand{}
}

func (cmd *BucketListCommand) ParseFlags(args []string) error {
	fs := newFlagSet("bucket-list", "-add <book id> | -remove <book id>",
		"Manage the Book Bucket List. Use list-books -bucket-list to view it.",
		&cmd.DatabasePath)
	fs.UintVar(&cmd.AddID, "add", 0, "Book id to add")
	fs.UintVar(&cmd.RemoveID, "remove", 0, "Book id to remove")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if (cmd.AddID == 0) == (cmd.RemoveID == 0) {
		return fmt.Errorf("exactly one of -add or -remove is required")
	}
	return nil
}

func (cmd *BucketListCommand) Run() error {
	out := outOrStdout(cmd.Out)
	ctx := context.Background()

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	bucket := bucketlist.NewRepository(db.DB)

	if cmd.RemoveID != 0 {
		if err := bucket.RemoveFromBucketList(ctx, cmd.RemoveID); err != nil {
			return fmt.Errorf("failed to remove from bucket list: %w", err)
		}
		fmt.Fprintf(out, "Book %d removed from your Book Bucket List\n", cmd.RemoveID)
		return nil
	}

	book, err := books.NewRepository(db.DB).GetBookByID(ctx, cmd.AddID)
	if err != nil {
		return describeLookupError(cmd.AddID, err)
	}
	added, err := bucket.AddToBucketList(ctx, cmd.AddID)
	if err != nil {
		return fmt.Errorf("failed to add to bucket list: %w", err)
	}
	if !added {
		fmt.Fprintf(out, "'%s' is already in your Book Bucket List!\n", book.Title)
		return nil
	}
	fmt.Fprintf(out, "'%s' added to your Book Bucket List!\n", book.Title)
	return nil
}

func describeLookupError(id uint, err error) error {
	if errors.Is(err, database.ErrBookNotFound) {
		return fmt.Errorf("book %d not found", id)
	}
	return fmt.Errorf("failed to load book %d: %w", id, err)
}
