package cli

import (
	"fmt"
	"io"
)

// InitDBCommand creates the library tables and exits.
type InitDBCommand struct {
	DatabasePath string
	Out          io.Writer
}

func NewInitDBCommand() *InitDBCommand {
	return &InitDBCommand{}
}

func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := newFlagSet("init-db", "[-db <path>]",
		"Create the books and book_bucket_list tables if they do not exist.\nExisting tables are left untouched.",
		&cmd.DatabasePath)
	return fs.Parse(args)
}

func (cmd *InitDBCommand) Run() error {
	out := outOrStdout(cmd.Out)

	db, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(out, "Library ready at %s\n", cmd.DatabasePath)
	return nil
}
