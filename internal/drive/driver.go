package drive

import "time"

// OutputLine is the minimal interface the generator needs from a GPIO
// output backend. SetValue is called on every PWM step, so
// implementations must be non-blocking and bounded-time.
//
// Close should be best-effort and leave the line driven low.
type OutputLine interface {
	SetValue(v int) error
	Close() error
}

// EdgeWatch is an active rising-edge subscription on the input line.
// Closing it guarantees the registered handler will not be invoked
// again.
type EdgeWatch interface {
	Close() error
}

// Test seams, following the same pattern the rest of the codebase uses
// for hardware backends.
var (
	openOutputFn = openOutput
	watchEdgesFn = watchEdges
)

// edgeHandler receives the event timestamp as a CLOCK_MONOTONIC offset.
type edgeHandler func(ts time.Duration)
