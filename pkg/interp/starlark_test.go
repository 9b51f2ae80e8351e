package interp_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"quill/pkg/interp"
	"quill/pkg/notebook"
)

// collector gathers emissions; safe for concurrent emit.
type collector struct {
	mu     sync.Mutex
	events []notebook.Emission
}

func (c *collector) emit(em notebook.Emission) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, em)
}

func (c *collector) all() []notebook.Emission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notebook.Emission(nil), c.events...)
}

func newEngine(t *testing.T) *interp.Engine {
	t.Helper()
	e := interp.New()
	if err := e.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return e
}

func TestSubmit_PrintGoesToStdout(t *testing.T) {
	e := newEngine(t)
	var c collector

	if err := e.Submit(context.Background(), `print("hi")`, c.emit); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := c.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 emission, got %d: %+v", len(got), got)
	}
	if got[0].Stream != notebook.StreamStdout || got[0].Text != "hi" {
		t.Fatalf("unexpected emission %+v", got[0])
	}
}

func TestSubmit_GlobalsPersistAcrossCells(t *testing.T) {
	e := newEngine(t)
	var c collector

	if err := e.Submit(context.Background(), "x = 40", c.emit); err != nil {
		t.Fatalf("submit x: %v", err)
	}
	if err := e.Submit(context.Background(), "print(x + 2)", c.emit); err != nil {
		t.Fatalf("submit print: %v", err)
	}

	got := c.all()
	if len(got) != 1 || got[0].Text != "42" {
		t.Fatalf("expected shared interpreter state to yield 42, got %+v", got)
	}
}

func TestSubmit_EchoesExpressionValue(t *testing.T) {
	e := newEngine(t)
	var c collector

	if err := e.Submit(context.Background(), "1 + 1", c.emit); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := c.all()
	if len(got) != 1 || got[0].Text != "2" || got[0].Stream != notebook.StreamStdout {
		t.Fatalf("expected expression echo 2, got %+v", got)
	}
}

func TestSubmit_FailureEmitsStderrAndReturnsError(t *testing.T) {
	e := newEngine(t)
	var c collector

	err := e.Submit(context.Background(), "undefined_name", c.emit)
	if err == nil {
		t.Fatalf("expected error for undefined name")
	}

	got := c.all()
	if len(got) != 1 || got[0].Stream != notebook.StreamStderr {
		t.Fatalf("expected one stderr emission, got %+v", got)
	}
	if !strings.Contains(got[0].Text, "undefined_name") {
		t.Fatalf("expected failure detail in stderr, got %q", got[0].Text)
	}

	// Non-fatal: the engine accepts the next submission.
	if err := e.Submit(context.Background(), "x = 1", c.emit); err != nil {
		t.Fatalf("submit after failure: %v", err)
	}
}

func TestBootstrap_DiscardsInterpreterState(t *testing.T) {
	e := newEngine(t)
	var c collector

	if err := e.Submit(context.Background(), "x = 1", c.emit); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Bootstrap(context.Background()); err != nil {
		t.Fatalf("rebootstrap: %v", err)
	}
	if err := e.Submit(context.Background(), "print(x)", c.emit); err == nil {
		t.Fatalf("expected x to be undefined after bootstrap")
	}
}

func TestSubmit_RequiresBootstrap(t *testing.T) {
	e := interp.New()
	var c collector
	if err := e.Submit(context.Background(), "1", c.emit); err == nil {
		t.Fatalf("expected error before bootstrap")
	}
}

func TestInterrupt_CancelsRunawayLoop(t *testing.T) {
	e := newEngine(t)
	var c collector

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Submit(context.Background(), "while True:\n    pass\n", c.emit)
	}()

	// Give the loop a moment to start, then cancel cooperatively.
	time.Sleep(50 * time.Millisecond)
	if err := e.Interrupt(context.Background()); err != nil {
		t.Fatalf("interrupt: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatalf("expected cancellation error from interrupted submit")
		}
		if !strings.Contains(err.Error(), "interrupted") {
			t.Fatalf("expected interrupt reason in error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("interrupted submit did not quiesce")
	}
}

func TestSubmit_ContextCancellationInterrupts(t *testing.T) {
	e := newEngine(t)
	var c collector

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Submit(ctx, "while True:\n    pass\n", c.emit)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatalf("expected cancellation error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("cancelled submit did not quiesce")
	}
}
