package pipeline

import "github.com/aretw0/flume/pkg/value"

// Signal is a side-effecting instruction emitted by a Stage. Signals are a
// separate type from value.Value so the compiler keeps control instructions
// out of the data stream; only a Runner may execute them.
type Signal int

const (
	// SignalIncrement asks the adapter to bump the shared counter.
	SignalIncrement Signal = iota
	// SignalAnnounce asks the adapter to emit its fixed announcement.
	SignalAnnounce
)

// Output is what a Stage yields per pull: exactly one Signal or one Value.
type Output struct {
	isSignal bool
	signal   Signal
	value    value.Value
}

// FromValue wraps a data value as stage output.
func FromValue(v value.Value) *Output {
	return &Output{value: v}
}

// FromSignal wraps a control signal as stage output.
func FromSignal(s Signal) *Output {
	return &Output{isSignal: true, signal: s}
}

// Value returns the data payload, if this output carries one.
func (o *Output) Value() (value.Value, bool) {
	if o.isSignal {
		return value.Value{}, false
	}
	return o.value, true
}

// Signal returns the control payload, if this output carries one.
func (o *Output) Signal() (Signal, bool) {
	return o.signal, o.isSignal
}
