package pipeline

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalManager turns OS interrupts into the chain's shared cancellation
// signal. The signal is single-writer, multi-reader and level-triggered:
// once set it stays set for every subsequent read.
type SignalManager struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager creates a manager and immediately starts listening for
// SIGINT (Ctrl+C) and SIGTERM.
func NewSignalManager() *SignalManager {
	sm := &SignalManager{}
	sm.Reset()
	return sm
}

// Context returns the current signal context.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Interrupt returns the channel Runners poll before each upstream pull.
func (sm *SignalManager) Interrupt() <-chan struct{} {
	return sm.ctx.Done()
}

// Reset re-arms the signal listener so a subsequent interrupt can be
// captured after one has been handled.
func (sm *SignalManager) Reset() {
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.ctx, sm.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Stop permanently stops the signal listener.
func (sm *SignalManager) Stop() {
	if sm.cancel != nil {
		sm.cancel()
	}
}
