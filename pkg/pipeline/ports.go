// Package pipeline defines the pull-based stage contracts of a flume chain,
// the action adapter that bridges them, and the shared cancellation and
// counter primitives.
//
// A chain alternates between the two contracts: a Stage pulls values from a
// Connector and may emit either control signals or values; a Connector (in
// practice a Runner) pulls from a Stage, executes the signals, and exposes a
// plain value stream. Nothing is produced faster than it is consumed;
// backpressure is implicit in the pull protocol.
package pipeline

import (
	"context"

	"github.com/aretw0/flume/pkg/value"
)

// Stage is a pipeline unit that may emit control signals alongside data.
//
// Connect wires the upstream reference exactly once, before any Next call.
// A nil upstream is valid for source stages. Next returns the next output,
// or nil once the stage is exhausted; a well-behaved stage never yields
// again after returning nil. Calling Next before Connect returns nil (an
// empty stream), not an error.
type Stage interface {
	Connect(ctx context.Context, upstream Connector) error
	Next(ctx context.Context) (*Output, error)
}

// Connector is a pipeline unit that emits only data values. It follows the
// same wiring and end-of-stream rules as Stage.
type Connector interface {
	Connect(ctx context.Context, upstream Stage) error
	Next(ctx context.Context) (*value.Value, error)
}
