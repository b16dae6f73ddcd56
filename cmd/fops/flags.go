package main

import (
	"errors"
	"fmt"

	"github.com/nightveil/fops/internal/configuration"
	"github.com/nightveil/fops/internal/filter"
	"github.com/nightveil/fops/internal/schema"
	"github.com/spf13/cobra"
)

// addFilterFlags registers the selection flags shared by all tree-walking
// subcommands.
func addFilterFlags(cmd *cobra.Command, defaults *configuration.Defaults) {
	cmd.Flags().String("name", "", "glob pattern matched against base names")
	cmd.Flags().String("ext", "", "file extension to select, without the leading dot")
	cmd.Flags().String("min-size", "", "minimum file size (e.g. 512KB, 10MB; 1 KB is 1024 bytes)")
	cmd.Flags().String("max-size", "", "maximum file size (e.g. 1GB)")
	cmd.Flags().String("after", "", "only elements modified at or after (2006-01-02)")
	cmd.Flags().String("before", "", "only elements modified at or before (2006-01-02)")
	cmd.Flags().Bool("hidden", defaults.Hidden, "include hidden elements")
	cmd.Flags().Bool("recursive", true, "descend into subdirectories")
}

// filterFromFlags assembles a [schema.FilterSpec] from the selection flags.
func filterFromFlags(cmd *cobra.Command) (schema.FilterSpec, error) {
	var spec schema.FilterSpec

	spec.NamePattern, _ = cmd.Flags().GetString("name")
	spec.Extension, _ = cmd.Flags().GetString("ext")
	spec.IncludeHidden, _ = cmd.Flags().GetBool("hidden")
	spec.Recursive, _ = cmd.Flags().GetBool("recursive")

	if value, _ := cmd.Flags().GetString("min-size"); value != "" {
		size, err := filter.ParseSize(value)
		if err != nil {
			return spec, fmt.Errorf("invalid --min-size: %w", err)
		}
		spec.MinSize = size
	}

	if value, _ := cmd.Flags().GetString("max-size"); value != "" {
		size, err := filter.ParseSize(value)
		if err != nil {
			return spec, fmt.Errorf("invalid --max-size: %w", err)
		}
		spec.MaxSize = size
	}

	if value, _ := cmd.Flags().GetString("after"); value != "" {
		t, err := filter.ParseTime(value)
		if err != nil {
			return spec, fmt.Errorf("invalid --after: %w", err)
		}
		spec.ModifiedAfter = t
	}

	if value, _ := cmd.Flags().GetString("before"); value != "" {
		t, err := filter.ParseTime(value)
		if err != nil {
			return spec, fmt.Errorf("invalid --before: %w", err)
		}
		spec.ModifiedBefore = t
	}

	return spec, nil
}

// addConflictFlags registers the destination conflict flags of the transfer
// subcommands.
func addConflictFlags(cmd *cobra.Command, defaults *configuration.Defaults) {
	cmd.Flags().Bool("overwrite", defaults.Overwrite, "replace existing destinations without asking")
	cmd.Flags().Bool("interactive", defaults.Interactive, "ask before replacing existing destinations")
}

// overwriteFromFlags resolves the conflict flags into a
// [schema.OverwritePolicy].
func overwriteFromFlags(cmd *cobra.Command) (schema.OverwritePolicy, error) {
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if overwrite && interactive {
		return schema.OverwriteReject, errors.New("cannot use both --overwrite and --interactive")
	}

	switch {
	case overwrite:
		return schema.OverwriteAlways, nil
	case interactive:
		return schema.OverwritePrompt, nil
	default:
		return schema.OverwriteReject, nil
	}
}
