package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quill/internal/version"
)

// newRootCmd creates the root quill command with all subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quill",
		Short:         "Quill Starlark notebook",
		Long:          "quill is a cell-based Starlark notebook for the terminal.\nIt edits, runs, and snapshots notebooks of executable cells.",
		Version:       fmt.Sprintf("quill %s", version.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newNewCmd(),
		newRunCmd(),
		newPadCmd(),
		newSnapshotCmd(),
	)

	return cmd
}
