package pipeline

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned by a Runner when the shared cancellation signal
// was observed before an upstream pull. It is fatal: callers must stop
// pulling and tear the chain down.
var ErrCancelled = errors.New("pipeline cancelled")

// SourceError reports a failed filesystem enumeration or metadata lookup.
// Source stages do not retry or skip the failing entry; the error
// terminates the pipeline.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("source failure: %v", e.Err)
	}
	return fmt.Sprintf("source failure at %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
