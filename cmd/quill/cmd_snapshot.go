package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quill/pkg/document"
	"quill/pkg/snapshot"
)

// newSnapshotCmd creates the "quill snapshot" subcommand group.
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage session snapshots",
	}
	cmd.AddCommand(newSnapshotListCmd(), newSnapshotExportCmd())
	return cmd
}

// newSnapshotListCmd creates "quill snapshot list".
func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List captured sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeDB, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer closeDB()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("no snapshots")
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s  %s  %d cell(s)  %s\n", info.ID, info.CreatedAt, info.CellCount, info.Name)
			}
			return nil
		},
	}
}

// newSnapshotExportCmd creates "quill snapshot export": it turns a captured
// session's live cells back into a notebook file.
func newSnapshotExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <session-id> <file>",
		Short: "Export a snapshot's cells to a notebook file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer closeDB()

			cells, err := store.LoadCells(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(cells) == 0 {
				return fmt.Errorf("snapshot %s not found", args[0])
			}

			doc := &document.Document{Name: args[1]}
			for _, c := range cells {
				if c.Deleted {
					continue
				}
				doc.Cells = append(doc.Cells, document.Cell{Kind: string(c.Kind), Code: c.Code})
			}
			if err := document.Save(args[1], doc); err != nil {
				return err
			}
			fmt.Printf("exported %d cell(s) to %s\n", len(doc.Cells), args[1])
			return nil
		},
	}
}

// openSnapshotStore opens the default snapshot database.
func openSnapshotStore() (*snapshot.Store, func(), error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureHome(); err != nil {
		return nil, nil, err
	}
	db, err := snapshot.Open(paths.SnapshotDBPath)
	if err != nil {
		return nil, nil, err
	}
	return snapshot.NewStore(db), func() { _ = db.Close() }, nil
}
