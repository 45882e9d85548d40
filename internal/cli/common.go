package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/novelnest/internal/config"
	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/entities"
)

// newFlagSet builds a flag set with the shared -db flag and a usage header.
func newFlagSet(name, usage, description string, dbPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(dbPath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s %s\n\n", os.Args[0], name, usage)
		fmt.Fprintf(os.Stderr, "%s\n\n", description)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// openLibrary resolves path and opens the library, creating the tables if needed.
func openLibrary(path string) (*database.Database, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func outOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// parseStatus accepts a reading status in any letter case.
func parseStatus(s string) (entities.ReadingStatus, error) {
	for _, known := range entities.ReadingStatuses {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (want one of Unread, Reading, Completed)", s)
}

// stars renders a rating the way the library view shows it.
func stars(rating *float64) string {
	if rating == nil {
		return "-"
	}
	n := int(*rating)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
