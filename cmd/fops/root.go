package main

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates and returns the root cobra command.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fops",
		Short: "Filtered listing, transfer and search for directory trees",
		Long: `Fops walks directory trees with composable filters and acts on the
selection: listing, verified copy and move transfers, permission
probes and name or content search.

Transfers are checksummed end to end and land atomically through
temporary files; moves fall back to verified copy plus delete when
crossing filesystems. Flag defaults can be seeded from /etc/fops.env
and .fops.env files in the home and working directories.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewCopyCommand(app))
	cmd.AddCommand(NewMoveCommand(app))
	cmd.AddCommand(NewSearchCommand(app))
	cmd.AddCommand(NewCheckCommand(app))

	return cmd
}
