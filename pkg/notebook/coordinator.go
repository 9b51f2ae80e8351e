package notebook

import (
	"context"
	"sync"
)

// State is the worker session state tracked by the Coordinator.
type State string

// Worker session state constants.
const (
	StateBootstrapping State = "bootstrapping"
	StateReady         State = "ready"
	StateRunning       State = "running"
	StateInterrupting  State = "interrupting"
)

// NoCell is the sentinel active cell id outside Running/Interrupting.
const NoCell = -1

// Coordinator is the single-slot scheduler over the shared worker. It owns
// the session state machine and the activeCell attribution seam: every
// emission from an in-flight Submit is routed under the id the slot was
// granted to, so output attribution never depends on ambient UI state.
//
// Run requests while the worker is not Ready are rejected, never queued:
// queuing would buffer code submissions with no user-visible ordering, so
// the caller gets a BusyError and retries after the current run completes.
type Coordinator struct {
	store  *CellStore
	router *Router
	worker Worker

	mu         sync.Mutex
	state      State
	activeCell int
	quiesced   chan struct{} // closed when the current pump exits; nil when idle
}

// NewCoordinator creates a Coordinator in Bootstrapping state. Call
// Bootstrap to make it Ready.
func NewCoordinator(store *CellStore, router *Router, worker Worker) *Coordinator {
	return &Coordinator{
		store:      store,
		router:     router,
		worker:     worker,
		state:      StateBootstrapping,
		activeCell: NoCell,
	}
}

// Bootstrap performs the one-time worker initialization. On success the
// coordinator transitions to Ready. On failure it returns a BootstrapError
// and stays in Bootstrapping: the session cannot run any cell until a
// Restart succeeds. Calling Bootstrap outside Bootstrapping is a no-op.
func (c *Coordinator) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateBootstrapping {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.worker.Bootstrap(ctx); err != nil {
		return &BootstrapError{Err: err}
	}

	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()
	return nil
}

// State returns the current worker session state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveCell returns the id of the cell holding the execution slot, or
// NoCell.
func (c *Coordinator) ActiveCell() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeCell
}

// RequestRun grants the execution slot to cellID and submits its current
// code to the worker. Valid only in Ready: any other state yields a
// BusyError and no output events for the requested cell. A deleted or
// unknown cell id yields a NotFoundError.
//
// The run proceeds asynchronously against the code snapshot taken here;
// later edits or a delete of the cell do not affect it. The returned
// channel receives the terminal result (nil or *ExecError) exactly once.
func (c *Coordinator) RequestRun(ctx context.Context, cellID int) (<-chan error, error) {
	c.mu.Lock()
	if c.state != StateReady {
		err := &BusyError{State: c.state, ActiveCell: c.activeCell}
		c.mu.Unlock()
		return nil, err
	}
	cell, ok := c.store.Get(cellID)
	if !ok {
		c.mu.Unlock()
		return nil, &NotFoundError{CellID: cellID}
	}
	c.store.MarkHasRun(cellID)
	c.state = StateRunning
	c.activeCell = cellID
	quiesced := make(chan struct{})
	c.quiesced = quiesced
	c.mu.Unlock()

	done := make(chan error, 1)
	go c.pump(ctx, cellID, cell.Code, done, quiesced)
	return done, nil
}

// pump drives one Submit to completion, then returns the session to Ready.
// A failed Submit is not fatal: its events were already routed and the
// worker has quiesced.
func (c *Coordinator) pump(ctx context.Context, cellID int, code string, done chan<- error, quiesced chan struct{}) {
	err := c.worker.Submit(ctx, code, c.route)
	if err != nil {
		err = &ExecError{CellID: cellID, Err: err}
	}

	c.mu.Lock()
	c.state = StateReady
	c.activeCell = NoCell
	c.quiesced = nil
	c.mu.Unlock()

	done <- err
	close(quiesced)
}

// route appends one worker emission to the log under the active cell id.
// Emissions arriving while the state is not Running (best-effort output
// after an interrupt was issued) are dropped.
func (c *Coordinator) route(em Emission) {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	id := c.activeCell
	c.mu.Unlock()
	c.router.Route(id, em)
}

// RequestInterrupt requests cooperative cancellation of the in-flight run
// and blocks until the worker quiesces back to Ready. Outside Running it
// changes nothing and returns a BusyError so the rejection is observable.
// Cancellation is best-effort and not time-boxed; callers wanting a hard
// timeout layer it via ctx on their side of the worker contract.
func (c *Coordinator) RequestInterrupt(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateRunning {
		err := &BusyError{State: c.state, ActiveCell: c.activeCell}
		c.mu.Unlock()
		return err
	}
	c.state = StateInterrupting
	quiesced := c.quiesced
	c.mu.Unlock()

	err := c.worker.Interrupt(ctx)
	<-quiesced
	return err
}

// Restart tears the session down and brings a fresh one up: interrupt any
// in-flight run, hard-clear the entire output log, reset every cell's
// HasRun, and re-enter Bootstrapping -> Ready. Cell code is untouched.
// Idempotent when issued repeatedly. This is the only hard clear; every
// other clear is a soft visibility flip.
func (c *Coordinator) Restart(ctx context.Context) error {
	c.mu.Lock()
	state := c.state
	quiesced := c.quiesced
	c.mu.Unlock()

	if state == StateRunning {
		_ = c.worker.Interrupt(ctx) // best-effort; pump exit is what matters
	}
	if quiesced != nil {
		<-quiesced
	}

	c.mu.Lock()
	c.state = StateBootstrapping
	c.activeCell = NoCell
	c.mu.Unlock()

	c.router.DiscardAll()
	c.store.ResetHasRun()

	if err := c.worker.Bootstrap(ctx); err != nil {
		return &BootstrapError{Err: err}
	}

	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()
	return nil
}
