package main

import (
	"context"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"quill/pkg/notebook"
)

// bootMsg carries the result of the initial worker bootstrap.
type bootMsg struct{ err error }

// runDoneMsg carries the terminal result of a cell run (or its rejection).
type runDoneMsg struct {
	cellID int
	err    error
}

// interruptedMsg carries the result of an interrupt request.
type interruptedMsg struct{ err error }

// restartDoneMsg carries the result of a session restart.
type restartDoneMsg struct{ err error }

// editorMode distinguishes the cell list from the in-cell editor.
type editorMode int

const (
	// ListMode navigates the cell list.
	ListMode editorMode = iota
	// EditMode edits a single cell's code.
	EditMode
)

// Model is the Bubble Tea model for the quill pad.
type Model struct {
	path string
	nb   *notebook.Notebook

	mode     editorMode
	cursor   int // index into the active cell list
	editing  int // cell id under edit while in EditMode
	editor   textarea.Model
	spin     spinner.Model
	theme    Theme
	tabWidth int

	booted      bool
	fatalErr    error // bootstrap failure: session unusable until restart
	status      string
	fileChanged bool // notebook file modified on disk, reload pending

	width  int
	height int
}

// newModel creates a pad model around a loaded notebook session.
// Preferences arrive via QUILL_THEME and QUILL_TAB_WIDTH (see quill pad).
func newModel(path string, nb *notebook.Notebook) Model {
	editor := textarea.New()
	editor.Prompt = ""
	editor.ShowLineNumbers = true

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	tabWidth := 4
	if v, err := strconv.Atoi(os.Getenv("QUILL_TAB_WIDTH")); err == nil && v > 0 {
		tabWidth = v
	}

	return Model{
		path:     path,
		nb:       nb,
		editor:   editor,
		spin:     spin,
		theme:    ThemeByName(os.Getenv("QUILL_THEME")),
		tabWidth: tabWidth,
		status:   "bootstrapping interpreter...",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(bootCmd(m.nb), watchNotebook(m.path), m.spin.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 4)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case bootMsg:
		if msg.err != nil {
			m.fatalErr = msg.err
			m.status = "interpreter failed to start; press R to restart or q to quit"
		} else {
			m.booted = true
			m.status = "ready"
		}

	case runDoneMsg:
		m.status = runStatus(msg)

	case interruptedMsg:
		if msg.err != nil {
			m.status = statusForError(msg.err)
		} else {
			m.status = "interrupted"
		}

	case restartDoneMsg:
		if msg.err != nil {
			m.fatalErr = msg.err
			m.status = "restart failed; interpreter unavailable"
		} else {
			m.fatalErr = nil
			m.booted = true
			m.status = "session restarted"
		}

	case fsChangeMsg:
		m.fileChanged = true
		m.status = "notebook changed on disk — press g to reload"
		return m, watchNotebook(m.path)
	}

	return m, nil
}

// cells returns the active cells in creation order.
func (m Model) cells() []notebook.Cell {
	return slices.Collect(m.nb.Cells())
}

// clampCursor keeps the cursor inside the active cell list after deletes.
func (m Model) clampCursor() Model {
	n := len(m.cells())
	if n == 0 {
		m.cursor = 0
	} else if m.cursor >= n {
		m.cursor = n - 1
	}
	return m
}

// bootCmd returns a command performing the one-time worker bootstrap.
func bootCmd(nb *notebook.Notebook) tea.Cmd {
	return func() tea.Msg {
		return bootMsg{err: nb.Bootstrap(context.Background())}
	}
}

// runCellCmd requests a run and waits for its terminal result. Rejections
// (busy, not found) come back immediately through the same message.
func runCellCmd(nb *notebook.Notebook, id int) tea.Cmd {
	return func() tea.Msg {
		done, err := nb.Run(context.Background(), id)
		if err != nil {
			return runDoneMsg{cellID: id, err: err}
		}
		return runDoneMsg{cellID: id, err: <-done}
	}
}

// interruptCmd requests cooperative cancellation of the in-flight run.
func interruptCmd(nb *notebook.Notebook) tea.Cmd {
	return func() tea.Msg {
		return interruptedMsg{err: nb.Interrupt(context.Background())}
	}
}

// restartCmd tears down and re-bootstraps the session.
func restartCmd(nb *notebook.Notebook) tea.Cmd {
	return func() tea.Msg {
		return restartDoneMsg{err: nb.Restart(context.Background())}
	}
}
