// Package main implements the quill-pad interactive notebook TUI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quill/pkg/document"
	"quill/pkg/interp"
	"quill/pkg/notebook"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: quill-pad <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	doc, err := document.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill-pad: %v\n", err)
		os.Exit(1)
	}

	nb := notebook.New(interp.New())
	if err := doc.Apply(nb); err != nil {
		fmt.Fprintf(os.Stderr, "quill-pad: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(path, nb), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running pad: %v\n", err)
		os.Exit(1)
	}
}
