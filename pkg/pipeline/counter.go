package pipeline

import "sync/atomic"

// Counter is the single piece of shared mutable state a chain carries, bumped
// by SignalIncrement. Increments are atomic but unordered relative to each
// other; nothing stronger is needed.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a counter starting at n.
func NewCounter(n int64) *Counter {
	c := &Counter{}
	c.n.Store(n)
	return c
}

// Add bumps the counter by one.
func (c *Counter) Add() {
	c.n.Add(1)
}

// Load returns the current count.
func (c *Counter) Load() int64 {
	return c.n.Load()
}
