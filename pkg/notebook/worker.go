package notebook

import "context"

// StreamKind labels which output stream an emission belongs to.
type StreamKind string

// Stream kind constants.
const (
	StreamStdout StreamKind = "stdout"
	StreamStderr StreamKind = "stderr"
)

// Emission is one unit of raw worker output. The worker has no notion of
// cells; attribution happens in the coordinator/router layer.
type Emission struct {
	Stream StreamKind
	Text   string
}

// Worker is the contract for the shared execution engine. Implementations
// are stateful: globals defined by one Submit are visible to the next, and
// Bootstrap discards all accumulated state.
//
// At most one Submit may be outstanding at a time. That precondition is
// enforced by the Coordinator, not by implementations; violating it yields
// interleaved, mis-attributed output.
type Worker interface {
	// Bootstrap (re)initializes the engine. Until it returns nil the engine
	// is unusable. Calling it again discards all interpreter state.
	Bootstrap(ctx context.Context) error

	// Submit executes code, calling emit for each output event in order,
	// and returns nil on success or an error describing the failure.
	// Submit blocks until the engine has quiesced.
	Submit(ctx context.Context, code string, emit func(Emission)) error

	// Interrupt requests cooperative cancellation of an outstanding Submit.
	// It is best-effort: the engine quiesces when Submit returns, and output
	// emitted between the request and quiescence may be dropped. With no
	// Submit outstanding, Interrupt is a harmless no-op.
	Interrupt(ctx context.Context) error
}
