package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/pkg/document"
	"quill/pkg/notebook"
)

// newNewCmd creates the "quill new" subcommand.
func newNewCmd() *cobra.Command {
	var kinds []string

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create a notebook file",
		Long:  "Creates a new notebook file seeded with one cell per requested kind\n(transform, type, generic). Defaults to a single generic cell.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			if len(kinds) == 0 {
				kinds = []string{string(notebook.KindGeneric)}
			}

			doc := &document.Document{Name: path}
			for _, k := range kinds {
				kind, err := document.ParseKind(k)
				if err != nil {
					return err
				}
				doc.Cells = append(doc.Cells, document.Cell{
					Kind: k,
					Code: kind.Template(),
				})
			}

			if err := document.Save(path, doc); err != nil {
				return err
			}
			fmt.Printf("created %s with %d cell(s)\n", path, len(doc.Cells))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "cell kinds to seed (repeatable)")
	return cmd
}
