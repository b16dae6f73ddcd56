package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/nightveil/fops/internal/schema"
	"github.com/nightveil/fops/internal/transfer"
	"github.com/nightveil/fops/internal/ui"
	"github.com/spf13/cobra"
)

// addTransferFlags registers the flags shared by the copy and move commands.
func addTransferFlags(cmd *cobra.Command, app *App) {
	addFilterFlags(cmd, app.defaults)
	addConflictFlags(cmd, app.defaults)

	cmd.Flags().Bool("preserve", app.defaults.Preserve, "carry permissions and timestamps onto copies")
	cmd.Flags().Bool("verbose", app.defaults.Verbose, "print one line per transferred element")
	cmd.Flags().Bool("ui", app.defaults.UI, "show a full-screen progress view for directory transfers")
}

// runTransfer drives a copy or move: a single element when the source is a
// file or symlink, a filtered batch when it is a directory.
func (app *App) runTransfer(cmd *cobra.Command, args []string, mode schema.TransferMode) error {
	spec, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	policy, err := overwriteFromFlags(cmd)
	if err != nil {
		return err
	}

	preserve, _ := cmd.Flags().GetBool("preserve")
	verbose, _ := cmd.Flags().GetBool("verbose")
	useUI, _ := cmd.Flags().GetBool("ui")

	var verboseWriter io.Writer
	if verbose {
		verboseWriter = cmd.OutOrStdout()
	}

	confirm := confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
	transferHandler := transfer.NewHandler(app.osOps, app.unixOps, app.checks, confirm, verboseWriter)

	source, dest := args[0], args[1]

	info, err := app.osOps.Lstat(source)
	if err != nil {
		return fmt.Errorf("cannot access source: %w", err)
	}

	if info.IsDir() {
		req := schema.BatchRequest{
			SourceRoot:          source,
			DestRoot:            dest,
			Filter:              spec,
			Mode:                mode,
			Overwrite:           policy,
			PreservePermissions: preserve,
		}

		return app.runBatch(cmd, transferHandler, req, useUI)
	}

	req := schema.TransferRequest{
		SourcePath:          source,
		DestPath:            dest,
		Mode:                mode,
		Overwrite:           policy,
		PreservePermissions: preserve,
	}

	return app.runSingle(cmd, transferHandler, req)
}

func (app *App) runSingle(cmd *cobra.Command, transferHandler *transfer.Handler, req schema.TransferRequest) error {
	out := cmd.OutOrStdout()

	res := transferHandler.Execute(cmd.Context(), req)

	switch res.Status {
	case transfer.StatusCompleted:
		color.New(color.FgGreen).Fprintf(out, "%s completed: %s (%s)\n",
			req.Mode, req.SourcePath, humanize.Bytes(uint64(res.BytesMoved)))

	case transfer.StatusCancelled:
		color.New(color.FgYellow).Fprintf(out, "%s cancelled: %s\n", req.Mode, req.SourcePath)

	default:
		color.New(color.FgRed).Fprintf(out, "%s failed: %v\n", req.Mode, res.Err)
		if res.Remediation != "" {
			fmt.Fprintf(out, "  hint: %s\n", res.Remediation)
		}

		app.exitCode = 2
	}

	return nil
}

func (app *App) runBatch(cmd *cobra.Command, transferHandler *transfer.Handler, req schema.BatchRequest, useUI bool) error {
	ctx := cmd.Context()

	var report *transfer.Report
	var err error

	if useUI && isatty.IsTerminal(os.Stdout.Fd()) {
		report, err = app.runBatchWithUI(ctx, transferHandler, req)
	} else {
		report, err = transferHandler.ExecuteBatch(ctx, req)
	}

	if err != nil {
		return fmt.Errorf("%s failed: %w", req.Mode, err)
	}

	printReport(cmd.OutOrStdout(), report)

	if !report.Success() {
		app.exitCode = 2
	}

	return nil
}

// runBatchWithUI runs the batch beside the full-screen view, pointing logs at
// the view for its lifetime. The view stays up after the batch finishes,
// until quit by the user; Ctrl+C cancels the batch through the shared
// context.
func (app *App) runBatchWithUI(ctx context.Context, transferHandler *transfer.Handler, req schema.BatchRequest) (*transfer.Report, error) {
	uiHandler := ui.NewHandler(ctx, app.cancel, transferHandler)

	var wg sync.WaitGroup

	var report *transfer.Report
	var batchErr error

	wg.Add(1)
	go func() {
		defer wg.Done()

		slog.SetDefault(slog.New(
			tint.NewHandler(uiHandler.LogWriter, &tint.Options{
				Level:      slog.LevelInfo,
				TimeFormat: time.Kitchen,
			}),
		))

		err := uiHandler.Launch()

		setupLogging()

		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("UI failure: falling back to terminal.", "err", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case <-ctx.Done():
				batchErr = ctx.Err()

				return
			default:
			}
			if uiHandler.Ready.Load() || uiHandler.Failed.Load() {
				break
			}
		}

		report, batchErr = transferHandler.ExecuteBatch(ctx, req)
	}()

	wg.Wait()

	return report, batchErr
}

func printReport(out io.Writer, report *transfer.Report) {
	if report.Success() {
		color.New(color.FgGreen).Fprintln(out, report.Summary())

		return
	}

	color.New(color.FgRed).Fprintln(out, report.Summary())

	for _, res := range report.Results {
		if res.Err == nil {
			continue
		}

		fmt.Fprintf(out, "  %s: %v\n", res.Request.SourcePath, res.Err)

		if res.Remediation != "" {
			fmt.Fprintf(out, "    hint: %s\n", res.Remediation)
		}
	}
}
