package clock

import (
	"sync"
	"time"
)

// Clock is the only source of "now" for expiry and past-date checks.
type Clock interface {
	Now() time.Time
}

type funcClock func() time.Time

func (f funcClock) Now() time.Time { return f() }

// NewRealClock reports wall time in UTC, the zone everything is stored in.
func NewRealClock() Clock {
	return funcClock(func() time.Time { return time.Now().UTC() })
}

// MockClock stands still until moved. Safe for concurrent use.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Add moves the clock by d, e.g. past a batch's expiry.
func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
