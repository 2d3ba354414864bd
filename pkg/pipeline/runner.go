package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/flume/pkg/value"
)

// announcement is the fixed message emitted for SignalAnnounce.
const announcement = "Hello world!"

// Runner adapts a Stage into a Connector: it pulls the upstream, executes
// control signals as they appear and forwards only data values downstream.
//
// Cancellation is cooperative. The interrupt channel is checked with a
// non-blocking read before every upstream pull; once it is readable the next
// pull returns ErrCancelled. An in-flight pull is never interrupted, and
// side effects already performed are not undone.
type Runner struct {
	counter   *Counter
	interrupt <-chan struct{}
	out       io.Writer
	upstream  Stage
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithAnnounceWriter redirects announcement output (default: stdout).
func WithAnnounceWriter(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// NewRunner creates an adapter sharing the given counter and cancellation
// signal. Both may be nil, in which case the matching behavior is skipped.
func NewRunner(counter *Counter, interrupt <-chan struct{}, opts ...RunnerOption) *Runner {
	r := &Runner{
		counter:   counter,
		interrupt: interrupt,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Connect wires the upstream stage.
func (r *Runner) Connect(ctx context.Context, upstream Stage) error {
	r.upstream = upstream
	return nil
}

// Next pulls the upstream until it yields a data value, executing any
// control signals encountered on the way. It returns nil once the upstream
// is exhausted, and ErrCancelled if the shared signal was set before a pull.
func (r *Runner) Next(ctx context.Context) (*value.Value, error) {
	if r.upstream == nil {
		return nil, nil
	}

	for {
		if r.cancelled() {
			return nil, ErrCancelled
		}

		out, err := r.upstream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, nil
		}

		if sig, ok := out.Signal(); ok {
			if err := r.execute(sig); err != nil {
				return nil, err
			}
			continue
		}

		v, _ := out.Value()
		return &v, nil
	}
}

func (r *Runner) execute(sig Signal) error {
	switch sig {
	case SignalIncrement:
		if r.counter != nil {
			r.counter.Add()
		}
	case SignalAnnounce:
		if _, err := fmt.Fprintln(r.out, announcement); err != nil {
			return err
		}
	}
	return nil
}

// cancelled performs the non-blocking read of the cancellation signal. The
// signal is level-triggered: once readable it stays readable.
func (r *Runner) cancelled() bool {
	if r.interrupt == nil {
		return false
	}
	select {
	case <-r.interrupt:
		return true
	default:
		return false
	}
}
