// Package interp provides the Starlark-backed execution engine behind the
// notebook.Worker contract. The engine is a shared, stateful interpreter:
// globals defined by one submission are visible to the next, and Bootstrap
// discards them all.
package interp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.starlark.net/lib/json"
	"go.starlark.net/lib/math"
	startime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"quill/pkg/notebook"
)

// fileOptions enables the dialect features a notebook needs: top-level
// control flow, reassignment of module globals across cells, while loops,
// sets, and recursion.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// cancelReason is the message attached to a cooperative thread cancel.
const cancelReason = "interrupted"

// Engine is a Starlark interpreter implementing notebook.Worker.
// The zero value is not usable; construct with New and call Bootstrap.
type Engine struct {
	mu      sync.Mutex
	globals starlark.StringDict
	thread  *starlark.Thread // non-nil only while a Submit is in flight
}

// New returns an unbootstrapped engine.
func New() *Engine {
	return &Engine{}
}

// Bootstrap resets the interpreter environment: all previously defined
// globals are discarded and the standard modules (math, time, json) are
// predeclared anew.
func (e *Engine) Bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals = starlark.StringDict{
		"math": math.Module,
		"time": startime.Module,
		"json": json.Module,
	}
	return nil
}

// Submit executes one cell's code against the shared environment. Print
// output is emitted on stdout; if the code is a single expression, its
// non-None value is echoed REPL-style. Failures are emitted on stderr and
// returned. Submit blocks until execution has quiesced.
func (e *Engine) Submit(ctx context.Context, code string, emit func(notebook.Emission)) error {
	e.mu.Lock()
	if e.globals == nil {
		e.mu.Unlock()
		return errors.New("engine not bootstrapped")
	}
	globals := e.globals
	thread := &starlark.Thread{
		Name: "quill-cell",
		Print: func(_ *starlark.Thread, msg string) {
			emit(notebook.Emission{Stream: notebook.StreamStdout, Text: msg})
		},
	}
	e.thread = thread
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.thread = nil
		e.mu.Unlock()
	}()

	// Propagate caller cancellation into the interpreter.
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(cancelReason)
		case <-finished:
		}
	}()

	if err := e.exec(thread, code, globals, emit); err != nil {
		emit(notebook.Emission{Stream: notebook.StreamStderr, Text: errorText(err)})
		return err
	}
	return nil
}

// exec parses and runs one chunk. A chunk that is a single expression is
// evaluated and echoed; anything else executes as a REPL chunk mutating the
// shared globals.
func (e *Engine) exec(thread *starlark.Thread, code string, globals starlark.StringDict, emit func(notebook.Emission)) error {
	f, err := fileOptions.Parse("cell.star", code, 0)
	if err != nil {
		return err
	}

	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			v, err := starlark.EvalExprOptions(fileOptions, thread, stmt.X, globals)
			if err != nil {
				return err
			}
			if v != starlark.None {
				emit(notebook.Emission{Stream: notebook.StreamStdout, Text: v.String()})
			}
			return nil
		}
	}

	return starlark.ExecREPLChunk(f, thread, globals)
}

// Interrupt cooperatively cancels the in-flight submission, if any. The
// engine quiesces when Submit returns; callers wait on that.
func (e *Engine) Interrupt(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.thread != nil {
		e.thread.Cancel(cancelReason)
	}
	return nil
}

// errorText renders an execution error for the stderr log, preferring the
// Starlark backtrace when one exists.
func errorText(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}
