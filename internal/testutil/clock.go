package testutil

import "sync"

// StepClock is a thread-safe monotonic logical clock.
//
// The trace log uses it to assign sequence numbers to transcript lines, so
// two runs of the same lesson produce identical sequences regardless of wall
// time. Unlike a wall clock it can be reset, which lets a test replay a
// lesson and expect byte-identical trace output.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu  sync.Mutex
	seq int64
}

// NewStepClock creates a new step clock starting at 0.
//
// The first call to Next() returns 1.
func NewStepClock() *StepClock {
	return &StepClock{seq: 0}
}

// Next increments and returns the next sequence number.
//
// Monotonic: always returns seq+1, never decreases.
func (c *StepClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *StepClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset resets the clock to 0.
//
// After Reset(), the next call to Next() returns 1.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
