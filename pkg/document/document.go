// Package document defines the on-disk notebook format: a YAML file
// holding the authored cells. Session-scoped runtime state (outputs,
// run flags) is never persisted here.
package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quill/pkg/notebook"
)

// Cell is one authored cell as stored on disk.
type Cell struct {
	Kind string `yaml:"kind"`
	Code string `yaml:"code"`
}

// Document is a notebook file: a name plus its cells in order.
type Document struct {
	Name  string `yaml:"name"`
	Cells []Cell `yaml:"cells"`
}

// ParseKind validates a document kind tag against the closed cell kind set.
func ParseKind(s string) (notebook.CellKind, error) {
	switch notebook.CellKind(s) {
	case notebook.KindTransform, notebook.KindType, notebook.KindGeneric:
		return notebook.CellKind(s), nil
	default:
		return "", fmt.Errorf("unknown cell kind %q", s)
	}
}

// Load reads and validates a notebook file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("read notebook %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse notebook %s: %w", path, err)
	}
	for i, c := range doc.Cells {
		if _, err := ParseKind(c.Kind); err != nil {
			return nil, fmt.Errorf("notebook %s, cell %d: %w", path, i, err)
		}
	}
	return &doc, nil
}

// Save writes the document to path, replacing any existing file.
func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal notebook: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // notebook files are user documents
		return fmt.Errorf("write notebook %s: %w", path, err)
	}
	return nil
}

// Apply loads the document's cells into a live notebook session in order.
func (d *Document) Apply(nb *notebook.Notebook) error {
	for i, c := range d.Cells {
		kind, err := ParseKind(c.Kind)
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		cell := nb.AddCell(kind)
		if err := nb.EditCode(cell.ID, c.Code); err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
	}
	return nil
}

// FromNotebook captures the live (non-deleted) cells of a session as a
// document, preserving creation order.
func FromNotebook(name string, nb *notebook.Notebook) *Document {
	doc := &Document{Name: name}
	for c := range nb.Cells() {
		doc.Cells = append(doc.Cells, Cell{Kind: string(c.Kind), Code: c.Code})
	}
	return doc
}
