package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/nightveil/fops/internal/filter"
	"github.com/nightveil/fops/internal/schema"
	"github.com/nightveil/fops/internal/walk"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <root>",
		Short: "List the elements of a directory tree",
		Long: `List walks a directory tree and prints every element selected by the
given filters, one per line with mode, humanized size and modification
time. Unreadable subtrees are skipped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runList(cmd, args[0])
		},
	}

	addFilterFlags(cmd, app.defaults)

	return cmd
}

func (app *App) runList(cmd *cobra.Command, root string) error {
	spec, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	matcher, err := filter.Compile(spec)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	out := cmd.OutOrStdout()

	var listed, failed int
	var totalSize int64

	w := walk.NewWalker(app.osOps, root, spec.Recursive)
	for w.Next() {
		if err := w.EntryErr(); err != nil {
			slog.Warn("Skipped unreadable element", "err", err)
			failed++

			continue
		}

		e := w.Entry()

		if matcher.ExcludeSubtree(e) {
			w.SkipSubtree()

			continue
		}

		if !matcher.Matches(e) {
			continue
		}

		printEntry(out, e)
		listed++

		if !e.IsDir {
			totalSize += e.Size
		}
	}

	if err := w.Err(); err != nil {
		return fmt.Errorf("traversal failed: %w", err)
	}

	summary := fmt.Sprintf("%d elements, %s", listed, humanize.Bytes(uint64(totalSize)))
	if failed > 0 {
		summary += fmt.Sprintf(", %d unreadable", failed)
		color.New(color.FgYellow).Fprintln(out, summary)

		app.exitCode = 2

		return nil
	}

	color.New(color.FgGreen).Fprintln(out, summary)

	return nil
}

func printEntry(out io.Writer, e schema.Entry) {
	size := "-"
	if !e.IsDir {
		size = humanize.Bytes(uint64(e.Size))
	}

	fmt.Fprintf(out, "%-12s %8s  %s  %s\n",
		e.Mode.String(), size, e.ModifiedAt.Format("2006-01-02 15:04"), e.Path)
}
