package engine

import (
	"sync"
	"time"
)

// Clock supplies the time stack deadlines are compared against.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real monotonic clock.
type SystemClock struct{}

// Now returns the current time with a monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable time source for deterministic tests.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a manual clock at the given start time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
