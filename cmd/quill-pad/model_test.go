package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quill/pkg/notebook"
)

// stubWorker is a minimal Worker for model tests.
type stubWorker struct {
	submit func(ctx context.Context, code string, emit func(notebook.Emission)) error
}

func (w *stubWorker) Bootstrap(ctx context.Context) error { return nil }

func (w *stubWorker) Submit(ctx context.Context, code string, emit func(notebook.Emission)) error {
	if w.submit == nil {
		return nil
	}
	return w.submit(ctx, code, emit)
}

func (w *stubWorker) Interrupt(ctx context.Context) error { return nil }

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newModel("scratch.quill.yaml", notebook.New(&stubWorker{}))
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestListKeys_AddAndNavigate(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runeKey('a'))
	m = press(t, m, runeKey('t'))
	m = press(t, m, runeKey('T'))

	cells := m.cells()
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if cells[1].Kind != notebook.KindTransform || cells[2].Kind != notebook.KindType {
		t.Fatalf("unexpected kinds: %v, %v", cells[1].Kind, cells[2].Kind)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor should follow the added cell, got %d", m.cursor)
	}

	m = press(t, m, runeKey('k'))
	m = press(t, m, runeKey('k'))
	m = press(t, m, runeKey('k')) // at top already
	if m.cursor != 0 {
		t.Fatalf("cursor should stop at 0, got %d", m.cursor)
	}

	m = press(t, m, runeKey('j'))
	if m.cursor != 1 {
		t.Fatalf("cursor should move down to 1, got %d", m.cursor)
	}
}

func TestListKeys_DeleteClampsCursor(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runeKey('a'))
	m = press(t, m, runeKey('a'))

	// Cursor sits on the last cell; deleting it must pull the cursor back.
	m = press(t, m, runeKey('d'))
	if got := len(m.cells()); got != 1 {
		t.Fatalf("expected 1 cell after delete, got %d", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", m.cursor)
	}

	// Deleting with no cells left is a no-op.
	m = press(t, m, runeKey('d'))
	m = press(t, m, runeKey('d'))
	if m.cursor != 0 {
		t.Fatalf("cursor should stay at 0, got %d", m.cursor)
	}
}

func TestEditMode_EscCommitsCode(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runeKey('a'))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != EditMode {
		t.Fatal("enter should switch to edit mode")
	}

	m.editor.SetValue("print(\"hello\")")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.mode != ListMode {
		t.Fatal("esc should return to list mode")
	}

	cell, ok := m.nb.Cell(m.cells()[0].ID)
	if !ok {
		t.Fatal("cell vanished")
	}
	if cell.Code != "print(\"hello\")" {
		t.Fatalf("esc should commit the buffer, got %q", cell.Code)
	}
}

func TestRunDoneMsg_BusyNamesActiveCell(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(runDoneMsg{
		cellID: 5,
		err:    &notebook.BusyError{State: notebook.StateRunning, ActiveCell: 2},
	})
	m = next.(Model)

	if !strings.Contains(m.status, "cell 2") {
		t.Fatalf("busy status should name the active cell, got %q", m.status)
	}
}

func TestBootFailure_ShowsFatalScreen(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(bootMsg{err: &notebook.BootstrapError{Err: context.DeadlineExceeded}})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "interpreter unavailable") {
		t.Fatalf("fatal screen missing, got:\n%s", view)
	}
}

func TestView_ShowsCodeAndOutputs(t *testing.T) {
	w := &stubWorker{
		submit: func(_ context.Context, _ string, emit func(notebook.Emission)) error {
			emit(notebook.Emission{Stream: notebook.StreamStdout, Text: "it works"})
			return nil
		},
	}
	nb := notebook.New(w)
	if err := nb.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	cell := nb.AddCell(notebook.KindGeneric)
	if err := nb.EditCode(cell.ID, "print(\"it works\")"); err != nil {
		t.Fatal(err)
	}
	done, err := nb.Run(context.Background(), cell.ID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("run failed: %v", err)
	}

	m := newModel("scratch.quill.yaml", nb)
	view := m.View()
	if !strings.Contains(view, "print(\"it works\")") {
		t.Fatalf("view missing cell code:\n%s", view)
	}
	if !strings.Contains(view, "it works") {
		t.Fatalf("view missing cell output:\n%s", view)
	}
}

func TestFsChange_GatesReload(t *testing.T) {
	m := newTestModel(t)

	// Without a pending change, g reports up to date.
	m = press(t, m, runeKey('g'))
	if !strings.Contains(m.status, "up to date") {
		t.Fatalf("expected up-to-date status, got %q", m.status)
	}

	next, _ := m.Update(fsChangeMsg{})
	m = next.(Model)
	if !m.fileChanged {
		t.Fatal("fsChangeMsg should flag a pending reload")
	}
	if !strings.Contains(m.status, "reload") {
		t.Fatalf("expected reload prompt, got %q", m.status)
	}
}
