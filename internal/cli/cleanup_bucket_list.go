package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mrlokans/novelnest/internal/database/bucketlist"
)

// CleanupBucketListCommand removes bucket list entries whose book no longer exists.
type CleanupBucketListCommand struct {
	DatabasePath string
	Out          io.Writer
}

func NewCleanupBucketListCommand() *CleanupBucketListCommand {
	return &CleanupBucketListCommand{}
}

func (cmd *CleanupBucketListCommand) ParseFlags(args []string) error {
	fs := newFlagSet("cleanup-bucket-list", "[-db <path>]",
		"Remove Book Bucket List entries that point at deleted books.",
		&cmd.DatabasePath)
	return fs.Parse(args)
}

func (cmd *CleanupBucketListCommand) Run() error {
	out := outOrStdout(cmd.Out)

	fmt.Fprintln(out, "Bucket List Cleanup")
	fmt.Fprintln(out, "===================")

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	removed, err := bucketlist.NewRepository(db.DB).DeleteOrphanEntries(context.Background())
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	fmt.Fprintf(out, "Removed %d orphaned entries\n", removed)
	return nil
}
