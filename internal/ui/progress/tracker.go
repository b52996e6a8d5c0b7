package progress

import (
	"sync"
	"time"

	"github.com/restic/eta/estimator"
)

// A ReportFunc receives a Snapshot of the tracked estimator.
//
// final is true for the last call, made from Tracker.Done.
type ReportFunc func(s estimator.Snapshot, final bool)

// A Tracker shares one estimator between the goroutines doing the work and a
// goroutine that periodically reports the estimate. The estimator itself is
// not concurrency-safe, every access goes through the Tracker's mutex.
//
// All methods may be called on a nil Tracker, they then do nothing.
type Tracker struct {
	*Updater

	mu  sync.Mutex
	est *estimator.Estimator
}

// NewTracker starts reporting est every interval. est should not be used
// directly while the Tracker is alive.
func NewTracker(interval time.Duration, est *estimator.Estimator, report ReportFunc) *Tracker {
	t := &Tracker{est: est}
	t.Updater = NewUpdater(interval, func(final bool) {
		report(t.Snapshot(), final)
	})
	return t
}

// Complete records n completed work units.
func (t *Tracker) Complete(n int64) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.est.CompleteWorkUnits(n)
}

// SetTotal changes the total number of work units.
func (t *Tracker) SetTotal(total int64) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.est.SetTotalWorkUnits(total)
}

// Snapshot returns the current state of the estimator.
func (t *Tracker) Snapshot() estimator.Snapshot {
	if t == nil {
		return estimator.Snapshot{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.est.Snapshot()
}

// Done stops the estimator if it is still running, then stops reporting.
// The final report therefore shows the frozen elapsed time.
func (t *Tracker) Done() {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.est.IsRunning() {
		// cannot fail, the stopwatch is running
		_ = t.est.Stop()
	}
	t.mu.Unlock()
	t.Updater.Done()
}
