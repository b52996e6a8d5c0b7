// Package stopwatch implements a start/stop state machine that measures
// elapsed time against a clock.Clock.
package stopwatch

import (
	"time"

	"github.com/restic/eta/clock"
	"github.com/restic/eta/internal/debug"
	"github.com/restic/eta/internal/errors"
)

// ErrInvalidState is returned by Start and Stop when the transition is not
// allowed from the current state.
var ErrInvalidState = errors.ErrInvalidState

// State is the lifecycle state of a Stopwatch.
type State int

const (
	NotStarted State = iota
	Started
	Stopped
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stopwatch moves from NotStarted to Started to Stopped, exactly once each.
// It is not safe for concurrent use.
type Stopwatch struct {
	clock       clock.Clock
	state       State
	start, stop time.Time
}

// New returns a Stopwatch reading clk. A nil clk means clock.System.
func New(clk clock.Clock) *Stopwatch {
	if clk == nil {
		clk = clock.System{}
	}
	return &Stopwatch{clock: clk}
}

// Clock returns the time source of sw.
func (sw *Stopwatch) Clock() clock.Clock {
	return sw.clock
}

// State returns the current state.
func (sw *Stopwatch) State() State {
	return sw.state
}

// Start records the start instant.
func (sw *Stopwatch) Start() error {
	if sw.state != NotStarted {
		return errors.InvalidState("stopwatch cannot be started, it is %v", sw.state)
	}
	sw.start = sw.clock.Now()
	sw.state = Started
	debug.Log("stopwatch started at %v", sw.start)
	return nil
}

// Stop records the stop instant, freezing Elapsed.
func (sw *Stopwatch) Stop() error {
	if sw.state != Started {
		return errors.InvalidState("stopwatch cannot be stopped, it is %v", sw.state)
	}
	sw.stop = sw.clock.Now()
	sw.state = Stopped
	debug.Log("stopwatch stopped after %v", sw.stop.Sub(sw.start))
	return nil
}

// IsRunning reports whether sw is started and not yet stopped.
func (sw *Stopwatch) IsRunning() bool {
	return sw.state == Started
}

// Elapsed returns the time since Start, or between Start and Stop once
// stopped. It is zero before Start.
func (sw *Stopwatch) Elapsed() time.Duration {
	switch sw.state {
	case Started:
		return sw.clock.Now().Sub(sw.start)
	case Stopped:
		return sw.stop.Sub(sw.start)
	default:
		return 0
	}
}

// StartedAt returns the start instant, or the zero time before Start.
func (sw *Stopwatch) StartedAt() time.Time {
	return sw.start
}
