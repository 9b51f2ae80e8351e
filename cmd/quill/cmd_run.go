package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/pkg/document"
	"quill/pkg/interp"
	"quill/pkg/notebook"
	"quill/pkg/snapshot"
)

// newRunCmd creates the "quill run" subcommand.
func newRunCmd() *cobra.Command {
	var snapshotAfter bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a notebook headlessly",
		Long:  "Executes every cell of the notebook in order against a fresh interpreter,\nprinting attributed output. Exits non-zero if any cell fails.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}

			nb := notebook.New(interp.New())
			if err := nb.Bootstrap(ctx); err != nil {
				return err
			}
			if err := doc.Apply(nb); err != nil {
				return err
			}

			// Cells run strictly one at a time; a failed cell does not stop
			// the ones after it.
			failures := 0
			for cell := range nb.Cells() {
				done, err := nb.Run(ctx, cell.ID)
				if err != nil {
					return err
				}
				if runErr := <-done; runErr != nil {
					failures++
				}
				printOutputs(nb, cell.ID)
			}

			if snapshotAfter {
				if err := saveSnapshot(cmd, doc.Name, nb); err != nil {
					return err
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d cell(s) failed", failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&snapshotAfter, "snapshot", false, "save a session snapshot after the run")
	return cmd
}

// printOutputs writes a cell's visible output, stdout events to stdout and
// stderr events to stderr, each line attributed to its cell.
func printOutputs(nb *notebook.Notebook, cellID int) {
	for ev := range nb.Outputs(cellID) {
		out := os.Stdout
		if ev.Stream == notebook.StreamStderr {
			out = os.Stderr
		}
		fmt.Fprintf(out, "[cell %d] %s\n", ev.CellID, ev.Text)
	}
}

// saveSnapshot captures the finished session into the snapshot database.
func saveSnapshot(cmd *cobra.Command, name string, nb *notebook.Notebook) error {
	paths, err := ResolvePaths()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureHome(); err != nil {
		return err
	}

	db, err := snapshot.Open(paths.SnapshotDBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := snapshot.NewStore(db).Save(cmd.Context(), name, nb.AllCells(), nb.AllEvents())
	if err != nil {
		return err
	}
	fmt.Printf("snapshot %s saved\n", id)
	return nil
}
