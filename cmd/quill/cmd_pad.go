package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// newPadCmd creates the "quill pad" subcommand.
func newPadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pad <file>",
		Short: "Open a notebook in the interactive pad",
		Long:  "Opens the quill-pad TUI for editing and running the notebook's cells.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("pad requires a terminal; use 'quill run' for headless execution")
			}

			paths, err := ResolvePaths()
			if err != nil {
				return fmt.Errorf("resolve paths: %w", err)
			}
			cfg, err := LoadConfig(paths.ConfigPath)
			if err != nil {
				return err
			}

			// Execute the quill-pad binary; preferences travel via env.
			padCmd := exec.CommandContext(cmd.Context(), "quill-pad", args[0])
			padCmd.Env = append(os.Environ(),
				"QUILL_THEME="+cfg.Theme,
				fmt.Sprintf("QUILL_TAB_WIDTH=%d", cfg.TabWidth),
			)
			padCmd.Stdin = os.Stdin
			padCmd.Stdout = os.Stdout
			padCmd.Stderr = os.Stderr

			if err := padCmd.Run(); err != nil {
				return fmt.Errorf("run quill-pad: %w", err)
			}

			return nil
		},
	}
}
