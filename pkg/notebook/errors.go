package notebook

import "fmt"

// BusyError reports a run or interrupt request rejected because the worker
// was not in the required state. It is non-fatal; callers are expected to
// surface it (e.g. "cell 3 is currently executing") and let the user retry.
type BusyError struct {
	State      State
	ActiveCell int // NoCell unless State is Running or Interrupting
}

func (e *BusyError) Error() string {
	if e.ActiveCell != NoCell {
		return fmt.Sprintf("worker busy (%s, cell %d)", e.State, e.ActiveCell)
	}
	return fmt.Sprintf("worker busy (%s)", e.State)
}

// NotFoundError reports an operation that referenced a cell id that does not
// resolve to a live (non-deleted) cell.
type NotFoundError struct {
	CellID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cell %d not found", e.CellID)
}

// BootstrapError reports a failed worker bootstrap. It is fatal: the
// coordinator cannot run any cell until a restart succeeds.
type BootstrapError struct {
	Err error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("worker bootstrap failed: %v", e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// ExecError reports a submitted run that terminated with a failure. It is
// non-fatal: the failure is already routed to the cell's output log as
// error-stream events and the worker has returned to Ready.
type ExecError struct {
	CellID int
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("cell %d execution failed: %v", e.CellID, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
