package notebook

import (
	"iter"
	"sync"
)

// OutputEvent is one unit of attributed, ordered output text from a run.
// CellID is fixed at creation and never changes; Visible is the only
// mutable field (flipped to false by a soft clear).
type OutputEvent struct {
	CellID  int
	Text    string
	Stream  StreamKind
	Visible bool
}

// Router owns the append-only output log. It translates raw worker
// emissions into OutputEvents tagged with the active cell id supplied by
// the coordinator. It performs no attribution verification of its own:
// correctness rests on the coordinator's single-flight guarantee.
type Router struct {
	mu     sync.Mutex
	events []OutputEvent
}

// NewRouter returns an empty output log.
func NewRouter() *Router {
	return &Router{}
}

// Route appends an emission to the log, attributed to cellID, in arrival
// order.
func (r *Router) Route(cellID int, em Emission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, OutputEvent{
		CellID:  cellID,
		Text:    em.Text,
		Stream:  em.Stream,
		Visible: true,
	})
}

// ClearOutputs soft-clears the cell's log: every current event for cellID
// becomes invisible. Future events for the cell still appear visible.
func (r *Router) ClearOutputs(cellID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].CellID == cellID {
			r.events[i].Visible = false
		}
	}
}

// DiscardAll hard-clears the entire log. Only restart does this.
func (r *Router) DiscardAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// VisibleFor returns the visible events for a cell in emission order. The
// sequence is restartable; each iteration observes a consistent copy.
func (r *Router) VisibleFor(cellID int) iter.Seq[OutputEvent] {
	return func(yield func(OutputEvent) bool) {
		for _, ev := range r.AllEvents() {
			if ev.CellID != cellID || !ev.Visible {
				continue
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// AllEvents returns a copy of the full log, invisible events included.
// Used by session snapshots and tests.
func (r *Router) AllEvents() []OutputEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]OutputEvent, len(r.events))
	copy(out, r.events)
	return out
}
