// Package clock provides the time source used by stopwatches and
// estimators. Production code uses System, tests and demos use Manual.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current instant. Implementations must be cheap and must
// not block.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock. time.Now carries a monotonic reading, so
// durations measured with it are not affected by clock adjustments.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Epoch is the instant a zero Manual clock starts at.
var Epoch = time.Date(2001, time.September, 9, 1, 46, 40, 0, time.UTC)

// Manual is a Clock that only moves when told to. It is safe for concurrent
// use so that a test can advance it while a reporter goroutine reads it.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = &Manual{}

// NewManual returns a Manual clock set to t. A zero t is replaced by Epoch.
func NewManual(t time.Time) *Manual {
	if t.IsZero() {
		t = Epoch
	}
	return &Manual{now: t}
}

// Now returns the clock's current instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.now.IsZero() {
		m.now = Epoch
	}
	return m.now
}

// Advance moves the clock forward by d. It panics on negative d, a
// Manual clock never runs backwards.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: Manual.Advance with negative duration")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.now.IsZero() {
		m.now = Epoch
	}
	m.now = m.now.Add(d)
}

// Set moves the clock to t. Like Advance, it panics if t is before the
// current instant.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.now.IsZero() {
		m.now = Epoch
	}
	if t.Before(m.now) {
		panic("clock: Manual.Set to an earlier instant")
	}
	m.now = t
}
