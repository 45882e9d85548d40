package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/novelnest/internal/config"
	"github.com/mrlokans/novelnest/internal/covers"
	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/entities"
)

// AddBookCommand adds a single book to the library.
type AddBookCommand struct {
	DatabasePath string
	Title        string
	Author       string
	Genre        string
	Year         int
	Rating       float64
	Status       string
	CoverPath    string
	MaxCoverMB   int
	Out          io.Writer

	setFlags map[string]bool
}

func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := newFlagSet("add-book", "-title <title> -author <author> [options]",
		"Add a book to the library. Optional fields stay empty unless their flag is given.",
		&cmd.DatabasePath)

	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Author, "author", "", "Book author (required)")
	fs.StringVar(&cmd.Genre, "genre", "", "Genre")
	fs.IntVar(&cmd.Year, "year", 0, "Publication year")
	fs.Float64Var(&cmd.Rating, "rating", 0, "Rating from 1 to 5")
	fs.StringVar(&cmd.Status, "status", string(entities.StatusUnread), "Reading status: Unread, Reading or Completed")
	fs.StringVar(&cmd.CoverPath, "cover", "", "Path to a JPEG or PNG cover image")
	fs.IntVar(&cmd.MaxCoverMB, "max-cover-mb", config.DefaultMaxCoverSizeMB, "Largest accepted cover in megabytes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.setFlags = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { cmd.setFlags[f.Name] = true })

	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Author = strings.TrimSpace(cmd.Author)
	if cmd.Title == "" {
		return fmt.Errorf("required flag -title not provided")
	}
	if cmd.Author == "" {
		return fmt.Errorf("required flag -author not provided")
	}
	if cmd.setFlags["rating"] && (cmd.Rating < 1 || cmd.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5, got %g", cmd.Rating)
	}
	if _, err := parseStatus(cmd.Status); err != nil {
		return err
	}
	return nil
}

// newBook converts the parsed flags, reading the cover file when one is given.
func (cmd *AddBookCommand) newBook() (books.NewBook, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return books.NewBook{}, err
	}

	in := books.NewBook{
		Title:  cmd.Title,
		Author: cmd.Author,
		Status: status,
	}
	if genre := strings.TrimSpace(cmd.Genre); genre != "" {
		in.Genre = &genre
	}
	if cmd.setFlags["year"] {
		year := cmd.Year
		in.Year = &year
	}
	if cmd.setFlags["rating"] {
		rating := cmd.Rating
		in.Rating = &rating
	}

	if cmd.CoverPath != "" {
		data, _, err := covers.NewValidatorMB(cmd.MaxCoverMB).ReadFile(cmd.CoverPath)
		if err != nil {
			return books.NewBook{}, fmt.Errorf("failed to read cover %s: %w", cmd.CoverPath, err)
		}
		in.Image = data
	}
	return in, nil
}

func (cmd *AddBookCommand) Run() error {
	out := outOrStdout(cmd.Out)

	in, err := cmd.newBook()
	if err != nil {
		return err
	}

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	book, err := books.NewRepository(db.DB).AddBook(context.Background(), in)
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	fmt.Fprintf(out, "Book '%s' by %s added successfully! (id %d)\n", book.Title, book.Author, book.ID)
	if book.HasCover() {
		fmt.Fprintf(out, "  Cover: %s, %d bytes\n", covers.ContentType(book.Image), len(book.Image))
	}
	return nil
}
