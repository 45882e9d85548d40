package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/database/bucketlist"
	"github.com/mrlokans/novelnest/internal/entities"
)

// ListBooksCommand prints the library, a filtered view of it, or the bucket list.
type ListBooksCommand struct {
	DatabasePath string
	Query        string
	Genre        string
	BucketList   bool
	Out          io.Writer
}

func NewListBooksCommand() *ListBooksCommand {
	return &ListBooksCommand{}
}

func (cmd *ListBooksCommand) ParseFlags(args []string) error {
	fs := newFlagSet("list-books", "[-q <text>] [-genre <genre>] [-bucket-list]",
		"List books in the library.\nSearch matches title or author, ignoring case.",
		&cmd.DatabasePath)

	fs.StringVar(&cmd.Query, "q", "", "Search text for title or author")
	fs.StringVar(&cmd.Genre, "genre", "", "Only books of this exact genre")
	fs.BoolVar(&cmd.BucketList, "bucket-list", false, "List the Book Bucket List instead")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BucketList && (cmd.Query != "" || cmd.Genre != "") {
		return fmt.Errorf("-bucket-list cannot be combined with -q or -genre")
	}
	return nil
}

func (cmd *ListBooksCommand) Run() error {
	out := outOrStdout(cmd.Out)
	ctx := context.Background()

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)

	var (
		list  []entities.Book
		title string
	)
	switch {
	case cmd.BucketList:
		title = "Book Bucket List"
		list, err = bucketlist.NewRepository(db.DB).GetBucketList(ctx)
	case cmd.Query != "":
		title = fmt.Sprintf("Search results for %q", cmd.Query)
		list, err = repo.SearchBooks(ctx, cmd.Query)
		if err == nil && cmd.Genre != "" {
			list = onlyGenre(list, cmd.Genre)
		}
	case cmd.Genre != "":
		title = "Genre: " + cmd.Genre
		list, err = repo.GetBooksByGenre(ctx, cmd.Genre)
	default:
		title = "Library"
		list, err = repo.GetAllBooks(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", len(title)))

	if len(list) == 0 {
		if cmd.BucketList {
			fmt.Fprintln(out, "Your Book Bucket List is empty.")
		} else {
			fmt.Fprintln(out, "No books found.")
		}
		return nil
	}

	writeBookTable(out, list)

	total, err := repo.CountBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	fmt.Fprintf(out, "\nShowing %d of %d books in library\n", len(list), total)
	return nil
}

func onlyGenre(list []entities.Book, genre string) []entities.Book {
	filtered := make([]entities.Book, 0, len(list))
	for _, b := range list {
		if b.GenreOrEmpty() == genre {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func writeBookTable(out io.Writer, list []entities.Book) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tGENRE\tYEAR\tRATING\tSTATUS")
	for _, b := range list {
		year := "-"
		if b.Year != nil {
			year = strconv.Itoa(*b.Year)
		}
		genre := b.GenreOrEmpty()
		if genre == "" {
			genre = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Title, b.Author, genre, year, stars(b.Rating), b.Status)
	}
	w.Flush()
}
