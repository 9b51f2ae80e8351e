// Package notebook implements the cell-based execution core: an ordered
// store of editable code cells, an output log with per-cell attribution,
// and a single-slot run coordinator over a shared interpreter worker.
package notebook

import (
	"iter"
	"sync"
)

// CellKind tags a cell's semantic role. It is a display/grouping tag only;
// execution logic never inspects it.
type CellKind string

// Cell kind constants (closed set).
const (
	KindTransform CellKind = "transform"
	KindType      CellKind = "type"
	KindGeneric   CellKind = "generic"
)

// Template returns the starting code for a freshly added cell of this kind.
func (k CellKind) Template() string {
	switch k {
	case KindTransform:
		return "def transform(value):\n    return value\n"
	case KindType:
		return "schema = {\n    \"field\": \"int\",\n}\n"
	default:
		return ""
	}
}

// Cell is one unit of editable code with independent run/output state.
// IDs are assigned at creation, monotonically increasing, and never reused
// within a session; deletion is soft and leaves the id space intact.
type Cell struct {
	ID      int
	Kind    CellKind
	Code    string
	HasRun  bool
	Deleted bool
}

// CellStore owns the ordered collection of cells and their authoring state.
// Order is creation order, independent of deletions.
type CellStore struct {
	mu     sync.Mutex
	cells  []Cell
	nextID int
}

// NewCellStore returns an empty store. The first cell gets id 0.
func NewCellStore() *CellStore {
	return &CellStore{}
}

// AddCell appends a new cell of the given kind with a fresh id and the
// kind's starting template as code. It always succeeds.
func (s *CellStore) AddCell(kind CellKind) Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Cell{
		ID:   s.nextID,
		Kind: kind,
		Code: kind.Template(),
	}
	s.nextID++
	s.cells = append(s.cells, c)
	return c
}

// DeleteCell soft-deletes the cell with the given id. It is a no-op if the
// id is absent or the cell is already deleted. Outputs referencing the cell
// are retained but become orphaned.
func (s *CellStore) DeleteCell(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.indexOf(id); ok {
		s.cells[i].Deleted = true
	}
}

// UpdateCode replaces the cell's code. It returns a NotFoundError if the id
// does not resolve to a live cell. No execution side effects: a run already
// in flight keeps the code snapshot it was submitted with.
func (s *CellStore) UpdateCode(id int, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(id)
	if !ok {
		return &NotFoundError{CellID: id}
	}
	s.cells[i].Code = code
	return nil
}

// MarkHasRun records that a run has been issued for the cell. Idempotent;
// only a session restart resets the flag.
func (s *CellStore) MarkHasRun(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cells {
		if s.cells[i].ID == id {
			s.cells[i].HasRun = true
			return
		}
	}
}

// ResetHasRun clears the HasRun flag on every cell. Used by restart.
func (s *CellStore) ResetHasRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cells {
		s.cells[i].HasRun = false
	}
}

// Get returns a copy of the live cell with the given id. Deleted cells do
// not resolve.
func (s *CellStore) Get(id int) (Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.indexOf(id); ok {
		return s.cells[i], true
	}
	return Cell{}, false
}

// ActiveCells returns the non-deleted cells in creation order. The sequence
// is restartable; each iteration observes a consistent copy.
func (s *CellStore) ActiveCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range s.snapshot() {
			if c.Deleted {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// AllCells returns a copy of every cell, deleted ones included. Used by
// session snapshots.
func (s *CellStore) AllCells() []Cell {
	return s.snapshot()
}

func (s *CellStore) snapshot() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// indexOf resolves an id to a slice index, skipping deleted cells.
// Caller must hold s.mu.
func (s *CellStore) indexOf(id int) (int, bool) {
	for i := range s.cells {
		if s.cells[i].ID == id && !s.cells[i].Deleted {
			return i, true
		}
	}
	return 0, false
}
