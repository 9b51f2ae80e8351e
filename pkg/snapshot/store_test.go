package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"

	"quill/pkg/notebook"
	"quill/pkg/snapshot"
)

func newStore(t *testing.T) *snapshot.Store {
	t.Helper()
	db, err := snapshot.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return snapshot.NewStore(db)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	cells := []notebook.Cell{
		{ID: 0, Kind: notebook.KindGeneric, Code: "x = 1\n", HasRun: true},
		{ID: 1, Kind: notebook.KindTransform, Code: "def transform(value):\n    return value\n", Deleted: true},
	}
	events := []notebook.OutputEvent{
		{CellID: 0, Text: "1", Stream: notebook.StreamStdout, Visible: true},
		{CellID: 0, Text: "old", Stream: notebook.StreamStderr, Visible: false},
	}

	id, err := store.Save(ctx, "demo", cells, events)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a session id")
	}

	gotCells, err := store.LoadCells(ctx, id)
	if err != nil {
		t.Fatalf("load cells: %v", err)
	}
	if len(gotCells) != 2 {
		t.Fatalf("expected 2 cells (deleted included), got %d", len(gotCells))
	}
	if gotCells[0] != cells[0] || gotCells[1] != cells[1] {
		t.Fatalf("cell round trip mismatch: %+v", gotCells)
	}

	gotEvents, err := store.LoadOutputs(ctx, id)
	if err != nil {
		t.Fatalf("load outputs: %v", err)
	}
	if len(gotEvents) != 2 {
		t.Fatalf("expected 2 events, got %d", len(gotEvents))
	}
	if gotEvents[0] != events[0] || gotEvents[1] != events[1] {
		t.Fatalf("event round trip mismatch: %+v", gotEvents)
	}
}

func TestList_CountsOnlyLiveCells(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	cells := []notebook.Cell{
		{ID: 0, Kind: notebook.KindGeneric},
		{ID: 1, Kind: notebook.KindGeneric, Deleted: true},
	}
	if _, err := store.Save(ctx, "first", cells, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(ctx, "second", nil, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(infos))
	}
	for _, info := range infos {
		switch info.Name {
		case "first":
			if info.CellCount != 1 {
				t.Fatalf("expected deleted cell excluded from count, got %d", info.CellCount)
			}
		case "second":
			if info.CellCount != 0 {
				t.Fatalf("expected empty session count 0, got %d", info.CellCount)
			}
		default:
			t.Fatalf("unexpected session %q", info.Name)
		}
	}
}
