package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nightveil/fops/internal/schema"
	"github.com/nightveil/fops/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <root>",
		Short: "Search a directory tree by name or content",
		Long: `Search walks a directory tree and reports the elements selected by the
given filters. With --content, candidate files are additionally scanned
line by line for the pattern and every matching line is printed; files
that look binary are skipped. Content matches rank before name-only
matches, files with more matching lines first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSearch(cmd, args[0])
		},
	}

	addFilterFlags(cmd, app.defaults)

	cmd.Flags().String("content", "", "pattern to look for inside files")
	cmd.Flags().Bool("regex", false, "treat the content pattern as a regular expression")
	cmd.Flags().Bool("case-sensitive", false, "match content without case folding")
	cmd.Flags().Int("workers", app.defaults.Workers, "content scan workers (0 = all cores)")

	return cmd
}

func (app *App) runSearch(cmd *cobra.Command, root string) error {
	spec, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	content, _ := cmd.Flags().GetString("content")
	useRegex, _ := cmd.Flags().GetBool("regex")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	workers, _ := cmd.Flags().GetInt("workers")

	criteria := schema.SearchCriteria{
		Filter:         spec,
		ContentPattern: content,
		UseRegex:       useRegex,
		CaseSensitive:  caseSensitive,
	}

	searchHandler := search.NewHandler(app.osOps, workers, nil)

	result, err := searchHandler.Search(cmd.Context(), root, criteria)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()

	for _, match := range result.Matches {
		printMatch(out, match)
	}

	summary := fmt.Sprintf("%d matches", len(result.Matches))
	if content != "" {
		summary += fmt.Sprintf(" (%d files scanned, %d binary skipped)",
			result.FilesScanned, result.BinarySkipped)
	}

	if len(result.Failed) > 0 {
		for _, failure := range result.Failed {
			fmt.Fprintf(out, "  unreadable %s: %v\n", failure.Path, failure.Err)
		}

		summary += fmt.Sprintf(", %d unreadable", len(result.Failed))
		color.New(color.FgYellow).Fprintln(out, summary)

		app.exitCode = 2

		return nil
	}

	color.New(color.FgGreen).Fprintln(out, summary)

	return nil
}

func printMatch(out io.Writer, match schema.SearchMatch) {
	if !match.ByContent() {
		fmt.Fprintln(out, match.Entry.Path)

		return
	}

	color.New(color.Bold).Fprintf(out, "%s (%d lines)\n", match.Entry.Path, len(match.Lines))

	for _, line := range match.Lines {
		fmt.Fprintf(out, "%6d: %s\n", line.Number, line.Text)
	}
}
