package main

import (
	"github.com/nightveil/fops/internal/schema"
	"github.com/spf13/cobra"
)

// NewMoveCommand creates the move command.
func NewMoveCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <source> <dest>",
		Short: "Move a file, or a filtered directory tree",
		Long: `Move relocates a single element, or a whole filtered tree when the
source is a directory. On the same filesystem this is an atomic rename;
across filesystems it degrades to a checksummed copy followed by source
removal, keeping permissions and timestamps. Directories left empty by
a tree move are cleaned up, deepest first.

A source whose copy landed but whose removal failed is reported as
partially moved and never counted as success.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTransfer(cmd, args, schema.TransferMove)
		},
	}

	addTransferFlags(cmd, app)

	return cmd
}
