// Package estimator estimates the remaining time of a process that is made
// of a known number of work units.
//
// An Estimator counts completed units, measures elapsed time with a
// stopwatch and asks its Strategy for the remaining time:
//
//	est, err := estimator.New(nil, nil).InitAndStart(100)
//	...
//	err = est.CompleteWorkUnits(25)
//	fmt.Println(est.RemainingTimeAsString())
//
// Ratio (the default) assumes every unit costs the same. Window uses a moving
// average over the most recent completions and follows rate changes faster.
//
// An Estimator is not safe for concurrent use.
package estimator

import (
	"fmt"
	"time"

	"github.com/restic/eta/clock"
	"github.com/restic/eta/internal/debug"
	"github.com/restic/eta/internal/errors"
	"github.com/restic/eta/internal/ui"
	"github.com/restic/eta/stopwatch"
)

var (
	// ErrInvalidArgument is returned for negative unit counts, a
	// non-positive total and invalid window sizes.
	ErrInvalidArgument = errors.ErrInvalidArgument
	// ErrInvalidState is returned for calls that are not allowed in the
	// current state.
	ErrInvalidState = errors.ErrInvalidState
)

// claimer is implemented by strategies that keep per-stream state.
type claimer interface {
	claim() bool
}

// Estimator tracks total and completed work units of one work stream.
type Estimator struct {
	total     int64
	completed int64

	stopwatch *stopwatch.Stopwatch
	strategy  Strategy
}

// New returns an Estimator reading clk and estimating with s. A nil clk
// means clock.System, a nil s means Ratio.
//
// Stateful strategies such as Window are owned by the returned Estimator and
// must not be passed to New again; New panics if a Window is reused.
func New(clk clock.Clock, s Strategy) *Estimator {
	if s == nil {
		s = NewRatio()
	}
	if c, ok := s.(claimer); ok && !c.claim() {
		panic("estimator: Window is already owned by another Estimator")
	}
	return &Estimator{
		stopwatch: stopwatch.New(clk),
		strategy:  s,
	}
}

// NewWithTotal is like New, but presets the total and the number of already
// completed units.
func NewWithTotal(clk clock.Clock, s Strategy, total, completed int64) (*Estimator, error) {
	if total < 0 {
		return nil, errors.InvalidArgument("totalWorkUnits may not be negative, got %d", total)
	}
	if completed < 0 || completed > total {
		return nil, errors.InvalidArgument("completedWorkUnits must be between 0 and %d, got %d", total, completed)
	}
	e := New(clk, s)
	e.total = total
	e.completed = completed
	return e, nil
}

// StartNew returns a started Ratio estimator on the system clock.
func StartNew(total int64) (*Estimator, error) {
	return New(nil, nil).InitAndStart(total)
}

// InitAndStart sets the total and starts measuring. It returns e so that
// construction can be chained.
func (e *Estimator) InitAndStart(total int64) (*Estimator, error) {
	if e.stopwatch.State() != stopwatch.NotStarted {
		return nil, errors.InvalidState("estimator has already been %v", e.stopwatch.State())
	}
	if total <= 0 {
		return nil, errors.InvalidArgument("totalWorkUnits must be greater than zero, got %d", total)
	}
	if err := e.SetTotalWorkUnits(total); err != nil {
		return nil, err
	}
	if err := e.Start(); err != nil {
		return nil, err
	}
	return e, nil
}

// SetTotalWorkUnits changes the total. It may not drop below the units
// already completed.
func (e *Estimator) SetTotalWorkUnits(total int64) error {
	if total < 0 {
		return errors.InvalidArgument("totalWorkUnits may not be negative, got %d", total)
	}
	if total < e.completed {
		return errors.InvalidState("totalWorkUnits %d is below the %d units already completed", total, e.completed)
	}
	e.total = total
	return nil
}

// Start starts the stopwatch. The total must be set first.
func (e *Estimator) Start() error {
	if e.total < 1 {
		return errors.InvalidState("to start the estimator totalWorkUnits must be greater than zero")
	}
	return e.stopwatch.Start()
}

// Stop stops the stopwatch, freezing the elapsed time.
func (e *Estimator) Stop() error {
	return e.stopwatch.Stop()
}

// IsRunning reports whether the stopwatch is running.
func (e *Estimator) IsRunning() bool {
	return e.stopwatch.IsRunning()
}

// State returns the stopwatch state.
func (e *Estimator) State() stopwatch.State {
	return e.stopwatch.State()
}

// CompleteWorkUnits records that n more units are done. On error nothing
// changes.
func (e *Estimator) CompleteWorkUnits(n int64) error {
	if n < 0 {
		return errors.InvalidArgument("workUnitsCompleted may not be negative, got %d", n)
	}
	if remaining := e.RemainingWorkUnits(); n > remaining {
		return errors.InvalidState("more work than available completed, remaining work units: %d", remaining)
	}

	e.strategy.Observe(e.stopwatch.Clock().Now(), n)
	e.completed += n
	return nil
}

// RemainingWorkUnits returns total - completed.
func (e *Estimator) RemainingWorkUnits() int64 {
	return e.total - e.completed
}

func (e *Estimator) TotalWorkUnits() int64 {
	return e.total
}

func (e *Estimator) CompletedWorkUnits() int64 {
	return e.completed
}

// Strategy returns the strategy e estimates with.
func (e *Estimator) Strategy() Strategy {
	return e.strategy
}

// ElapsedTime returns the stopwatch reading.
func (e *Estimator) ElapsedTime() time.Duration {
	return e.stopwatch.Elapsed()
}

// ElapsedTimeAsString returns the elapsed time as HH:MM:SS.
func (e *Estimator) ElapsedTimeAsString() string {
	return ui.FormatClock(e.ElapsedTime())
}

// RemainingTime returns the strategy's estimate: zero when all work is
// done, MaxDuration when no estimate is possible yet.
func (e *Estimator) RemainingTime() time.Duration {
	return e.strategy.Remaining(e.progress(e.ElapsedTime()))
}

// RemainingTimeAsString returns the remaining time as HH:MM:SS, or "∞"
// when RemainingTime is MaxDuration.
func (e *Estimator) RemainingTimeAsString() string {
	return ui.FormatETA(e.RemainingTime())
}

func (e *Estimator) progress(elapsed time.Duration) Progress {
	return Progress{Total: e.total, Completed: e.completed, Elapsed: elapsed}
}

// Snapshot is a consistent view of an Estimator at one instant.
type Snapshot struct {
	Total     int64
	Completed int64
	Elapsed   time.Duration
	Remaining time.Duration
	Running   bool
}

// Snapshot reads the clock once and derives everything from that reading.
func (e *Estimator) Snapshot() Snapshot {
	elapsed := e.ElapsedTime()
	s := Snapshot{
		Total:     e.total,
		Completed: e.completed,
		Elapsed:   elapsed,
		Remaining: e.strategy.Remaining(e.progress(elapsed)),
		Running:   e.IsRunning(),
	}
	debug.Log("snapshot %v", s)
	return s
}

// Done reports whether all units are completed.
func (s Snapshot) Done() bool {
	return s.Completed >= s.Total
}

// Str returns a compact form for the debug log.
func (s Snapshot) Str() string {
	return fmt.Sprintf("%d/%d elapsed=%v remaining=%v", s.Completed, s.Total, s.Elapsed, ui.FormatETA(s.Remaining))
}
