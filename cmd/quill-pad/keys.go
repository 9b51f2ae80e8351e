package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"quill/pkg/document"
	"quill/pkg/notebook"
)

// handleKeyPress routes key input based on the current mode.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == EditMode {
		return m.handleEditKeys(msg)
	}
	return m.handleListKeys(msg.String())
}

// handleListKeys processes keys while navigating the cell list.
func (m Model) handleListKeys(key string) (tea.Model, tea.Cmd) {
	cells := m.cells()

	switch key {
	case "q":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(cells)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "a":
		return m.addCell(notebook.KindGeneric), nil
	case "t":
		return m.addCell(notebook.KindTransform), nil
	case "T":
		return m.addCell(notebook.KindType), nil

	case "d":
		if len(cells) == 0 {
			break
		}
		m.nb.DeleteCell(cells[m.cursor].ID)
		m.status = fmt.Sprintf("deleted cell %d", cells[m.cursor].ID)
		return m.clampCursor(), nil

	case "enter":
		if len(cells) == 0 {
			break
		}
		cell := cells[m.cursor]
		m.editing = cell.ID
		m.editor.SetValue(cell.Code)
		m.editor.Focus()
		m.mode = EditMode
		m.status = fmt.Sprintf("editing cell %d (esc to save)", cell.ID)
		return m, textarea.Blink

	case "r":
		if len(cells) == 0 {
			break
		}
		if !m.booted {
			m.status = "interpreter not ready yet"
			break
		}
		m.status = fmt.Sprintf("running cell %d...", cells[m.cursor].ID)
		return m, runCellCmd(m.nb, cells[m.cursor].ID)

	case "i":
		return m, interruptCmd(m.nb)

	case "R":
		m.status = "restarting session..."
		return m, restartCmd(m.nb)

	case "c":
		if len(cells) == 0 {
			break
		}
		m.nb.ClearOutputs(cells[m.cursor].ID)
		m.status = fmt.Sprintf("cleared outputs of cell %d", cells[m.cursor].ID)

	case "s":
		if err := document.Save(m.path, document.FromNotebook(m.path, m.nb)); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "saved " + m.path
		}

	case "g":
		return m.reloadFromDisk()
	}

	return m, nil
}

// handleEditKeys processes keys while the cell editor is focused.
// Esc commits the buffer back into the cell and returns to the list.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.nb.EditCode(m.editing, m.editor.Value()); err != nil {
			m.status = statusForError(err)
		} else {
			m.status = fmt.Sprintf("updated cell %d", m.editing)
		}
		m.editor.Blur()
		m.mode = ListMode
		return m, nil

	case "tab":
		m.editor.InsertString(strings.Repeat(" ", m.tabWidth))
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// addCell appends a new cell seeded with its kind's template and moves the
// cursor onto it.
func (m Model) addCell(kind notebook.CellKind) Model {
	cell := m.nb.AddCell(kind)
	m.cursor = len(m.cells()) - 1
	m.status = fmt.Sprintf("added %s cell %d", kind, cell.ID)
	return m
}

// reloadFromDisk replaces the cell list with the file's current contents.
// Only allowed while idle so an in-flight run keeps its attribution.
func (m Model) reloadFromDisk() (tea.Model, tea.Cmd) {
	if !m.fileChanged {
		m.status = "notebook is up to date"
		return m, nil
	}
	if m.nb.State() != notebook.StateReady {
		m.status = "cannot reload while a cell is executing"
		return m, nil
	}

	doc, err := document.Load(m.path)
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m, nil
	}
	for cell := range m.nb.Cells() {
		m.nb.DeleteCell(cell.ID)
	}
	if err := doc.Apply(m.nb); err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m, nil
	}
	m.fileChanged = false
	m.cursor = 0
	m.status = "reloaded " + m.path
	return m, nil
}

// runStatus renders a run result for the status bar.
func runStatus(msg runDoneMsg) string {
	if msg.err == nil {
		return fmt.Sprintf("cell %d finished", msg.cellID)
	}
	return statusForError(msg.err)
}

// statusForError maps session errors to status-bar text. Rejections are
// surfaced here rather than crashing the pad.
func statusForError(err error) string {
	var busy *notebook.BusyError
	if errors.As(err, &busy) {
		if busy.ActiveCell != notebook.NoCell {
			return fmt.Sprintf("busy: cell %d is currently executing", busy.ActiveCell)
		}
		return "busy: session is " + string(busy.State)
	}
	var notFound *notebook.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("cell %d does not exist", notFound.CellID)
	}
	var exec *notebook.ExecError
	if errors.As(err, &exec) {
		return fmt.Sprintf("cell %d failed", exec.CellID)
	}
	return err.Error()
}
