package notebook

import (
	"context"
	"iter"
)

// Notebook composes the cell store, output router, and run coordinator for
// the editing surface. It holds no state of its own and is not a
// concurrency boundary; it only sequences calls across the components.
type Notebook struct {
	store  *CellStore
	router *Router
	coord  *Coordinator
}

// New assembles a notebook session around the given worker. The session
// starts in Bootstrapping; call Bootstrap before running cells.
func New(worker Worker) *Notebook {
	store := NewCellStore()
	router := NewRouter()
	return &Notebook{
		store:  store,
		router: router,
		coord:  NewCoordinator(store, router, worker),
	}
}

// Bootstrap initializes the worker session. A BootstrapError is fatal for
// the session; Restart is the only recovery.
func (n *Notebook) Bootstrap(ctx context.Context) error {
	return n.coord.Bootstrap(ctx)
}

// AddCell appends a new cell of the given kind.
func (n *Notebook) AddCell(kind CellKind) Cell {
	return n.store.AddCell(kind)
}

// DeleteCell soft-deletes a cell. Permitted in any worker state, including
// against the cell currently executing: the run continues against its code
// snapshot and its output stays attributed to the deleted id.
func (n *Notebook) DeleteCell(id int) {
	n.store.DeleteCell(id)
}

// EditCode replaces a cell's code. Permitted in any worker state.
func (n *Notebook) EditCode(id int, code string) error {
	return n.store.UpdateCode(id, code)
}

// Run requests execution of the cell's current code. See
// Coordinator.RequestRun for rejection semantics.
func (n *Notebook) Run(ctx context.Context, id int) (<-chan error, error) {
	return n.coord.RequestRun(ctx, id)
}

// Interrupt cancels the in-flight run, if any.
func (n *Notebook) Interrupt(ctx context.Context) error {
	return n.coord.RequestInterrupt(ctx)
}

// ClearOutputs soft-clears a cell's output log. Permitted in any worker
// state.
func (n *Notebook) ClearOutputs(id int) {
	n.router.ClearOutputs(id)
}

// Restart tears down and re-bootstraps the session. See
// Coordinator.Restart.
func (n *Notebook) Restart(ctx context.Context) error {
	return n.coord.Restart(ctx)
}

// Cells returns the non-deleted cells in creation order.
func (n *Notebook) Cells() iter.Seq[Cell] {
	return n.store.ActiveCells()
}

// Cell returns a copy of a live cell by id.
func (n *Notebook) Cell(id int) (Cell, bool) {
	return n.store.Get(id)
}

// Outputs returns the visible output events for a cell in emission order.
func (n *Notebook) Outputs(id int) iter.Seq[OutputEvent] {
	return n.router.VisibleFor(id)
}

// State returns the worker session state.
func (n *Notebook) State() State {
	return n.coord.State()
}

// ActiveCell returns the id of the cell holding the execution slot, or
// NoCell.
func (n *Notebook) ActiveCell() int {
	return n.coord.ActiveCell()
}

// AllCells returns every cell including deleted ones, for snapshotting.
func (n *Notebook) AllCells() []Cell {
	return n.store.AllCells()
}

// AllEvents returns the full output log including invisible events, for
// snapshotting.
func (n *Notebook) AllEvents() []OutputEvent {
	return n.router.AllEvents()
}
