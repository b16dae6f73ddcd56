package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/nightveil/fops/internal/schema"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Probe access permissions for a path",
		Long: `Check probes whether the given path can actually be read, written and
traversed, by performing the smallest real operation proving each
right. For a file, the write and traverse probes run against its parent
directory. Denied probes come with a remediation hint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runCheck(cmd, args[0])
		},
	}

	return cmd
}

func (app *App) runCheck(cmd *cobra.Command, path string) error {
	info, err := app.osOps.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access path: %w", err)
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	results := []schema.CheckResult{
		app.checks.CheckRead(path),
		app.checks.CheckWrite(dir),
		app.checks.CheckTraverse(dir),
	}

	out := cmd.OutOrStdout()

	denied := 0
	for _, res := range results {
		printCheckResult(out, res)

		if !res.Granted {
			denied++
		}
	}

	if denied > 0 {
		app.exitCode = 2
	}

	return nil
}

func printCheckResult(out io.Writer, res schema.CheckResult) {
	if res.Granted {
		fmt.Fprintf(out, "%-9s %s  %s\n", res.Op, color.GreenString("granted"), res.Path)

		return
	}

	fmt.Fprintf(out, "%-9s %s   %s (%v)\n", res.Op, color.RedString("denied"), res.Path, res.Cause)

	if res.Remediation != "" {
		fmt.Fprintf(out, "          hint: %s\n", res.Remediation)
	}
}
