package notebook_test

import (
	"context"
	"sync"

	"quill/pkg/notebook"
)

// fakeWorker is a scripted Worker. Submit behavior is supplied per test via
// the submit func; Bootstrap counts calls and can be forced to fail.
type fakeWorker struct {
	mu           sync.Mutex
	bootstrapErr error
	bootstraps   int
	submit       func(ctx context.Context, code string, emit func(notebook.Emission)) error
	interrupt    func(ctx context.Context) error
}

func (w *fakeWorker) Bootstrap(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bootstraps++
	return w.bootstrapErr
}

func (w *fakeWorker) Submit(ctx context.Context, code string, emit func(notebook.Emission)) error {
	if w.submit == nil {
		return nil
	}
	return w.submit(ctx, code, emit)
}

func (w *fakeWorker) Interrupt(ctx context.Context) error {
	if w.interrupt == nil {
		return nil
	}
	return w.interrupt(ctx)
}

func (w *fakeWorker) bootstrapCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bootstraps
}

// blockingWorker wraps fakeWorker with a Submit that emits pre, blocks until
// released (by Interrupt or by the test), then emits post and returns.
type blockingWorker struct {
	fakeWorker
	started chan struct{}
	release chan struct{}
	once    sync.Once
	pre     []notebook.Emission
	post    []notebook.Emission
}

func newBlockingWorker(pre, post []notebook.Emission) *blockingWorker {
	w := &blockingWorker{
		started: make(chan struct{}),
		release: make(chan struct{}),
		pre:     pre,
		post:    post,
	}
	w.submit = func(_ context.Context, _ string, emit func(notebook.Emission)) error {
		for _, em := range w.pre {
			emit(em)
		}
		close(w.started)
		<-w.release
		for _, em := range w.post {
			emit(em)
		}
		return nil
	}
	w.interrupt = func(_ context.Context) error {
		w.releaseRun()
		return nil
	}
	return w
}

func (w *blockingWorker) releaseRun() {
	w.once.Do(func() { close(w.release) })
}

func stdout(text string) notebook.Emission {
	return notebook.Emission{Stream: notebook.StreamStdout, Text: text}
}
