package main

import (
	"github.com/nightveil/fops/internal/schema"
	"github.com/spf13/cobra"
)

// NewCopyCommand creates the copy command.
func NewCopyCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <source> <dest>",
		Short: "Copy a file, or a filtered directory tree",
		Long: `Copy duplicates a single element, or a whole filtered tree when the
source is a directory. Every file lands through a temporary name and is
checksummed against its source before moving into place, so a
destination path never holds a half-written file.

Existing destinations fail the element unless --overwrite or
--interactive says otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTransfer(cmd, args, schema.TransferCopy)
		},
	}

	addTransferFlags(cmd, app)

	return cmd
}
