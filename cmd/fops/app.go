package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nightveil/fops/internal/configuration"
	"github.com/nightveil/fops/internal/schema"
	"github.com/nightveil/fops/internal/validation"
)

// App bundles the providers and handlers shared across all subcommands.
type App struct {
	osOps    *schema.OS
	unixOps  *schema.Unix
	checks   *validation.Handler
	defaults *configuration.Defaults

	cancel context.CancelFunc

	// exitCode is raised to 2 by subcommands that complete with per-element
	// failures; flag and structural errors exit 1 through the command error
	// path instead.
	exitCode int
}

// NewApp wires the application providers and loads the optional env-file
// defaults.
func NewApp(cancel context.CancelFunc) *App {
	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	return &App{
		osOps:    osProvider,
		unixOps:  unixProvider,
		checks:   validation.NewHandler(osProvider, unixProvider),
		defaults: loadDefaults(configHandler),
		cancel:   cancel,
	}
}

// loadDefaults resolves the optional defaults files in ascending precedence
// (machine-wide, home directory, working directory), so that later files win
// in the merge.
func loadDefaults(configHandler *configuration.Handler) *configuration.Defaults {
	var files []string

	if _, err := os.Stat(configuration.SystemEnvFile); err == nil {
		files = append(files, configuration.SystemEnvFile)
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, configuration.EnvFileName)
		if _, err := os.Stat(candidate); err == nil {
			files = append(files, candidate)
		}
	}

	if _, err := os.Stat(configuration.EnvFileName); err == nil {
		files = append(files, configuration.EnvFileName)
	}

	defaults, err := configHandler.LoadDefaults(files...)
	if err != nil {
		slog.Warn("Ignoring unreadable defaults file.", "err", err)

		return configuration.NewDefaults()
	}

	return defaults
}

// confirmPrompt returns a [schema.ConfirmFunc] asking a y/n question on the
// given streams. Anything but an explicit yes declines.
func confirmPrompt(in io.Reader, out io.Writer) schema.ConfirmFunc {
	reader := bufio.NewReader(in)

	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		answer := strings.ToLower(strings.TrimSpace(line))

		return answer == "y" || answer == "yes"
	}
}
