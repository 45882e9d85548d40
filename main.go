package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/novelnest/internal/cli"
	"github.com/mrlokans/novelnest/internal/config"
	"github.com/mrlokans/novelnest/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "init-db":
		cmd = cli.NewInitDBCommand()
	case "add-book":
		cmd = cli.NewAddBookCommand()
	case "list-books":
		cmd = cli.NewListBooksCommand()
	case "set-status":
		cmd = cli.NewSetStatusCommand()
	case "delete-book":
		cmd = cli.NewDeleteBookCommand()
	case "bucket-list":
		cmd = cli.NewBucketListCommand()
	case "cleanup-bucket-list":
		cmd = cli.NewCleanupBucketListCommand()

	case "version", "-v", "--version":
		fmt.Printf("novelnest %s (commit %s)\n", Version, Commit)
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve                Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  init-db              Create the library tables\n")
	fmt.Fprintf(os.Stderr, "  add-book             Add a book to the library\n")
	fmt.Fprintf(os.Stderr, "  list-books           List, search or filter books, or show the bucket list\n")
	fmt.Fprintf(os.Stderr, "  set-status           Change the reading status of a book\n")
	fmt.Fprintf(os.Stderr, "  delete-book          Delete a book\n")
	fmt.Fprintf(os.Stderr, "  bucket-list          Add a book to or remove it from the Book Bucket List\n")
	fmt.Fprintf(os.Stderr, "  cleanup-bucket-list  Remove bucket list entries for deleted books\n")
	fmt.Fprintf(os.Stderr, "  version              Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
