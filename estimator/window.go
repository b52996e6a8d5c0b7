package estimator

import (
	"math"
	"time"

	"github.com/restic/eta/internal/debug"
	"github.com/restic/eta/internal/errors"
)

// DefaultWindowSize is the number of samples NewWindow keeps when no
// explicit size is configured.
const DefaultWindowSize = 3

// Window estimates from the moving average of the per-unit durations of the
// most recent completions. A larger window gives steadier estimates, a
// smaller one adapts faster when the rate changes.
//
// Each sample is the time since the previous completion divided by the
// number of units completed in that step. The first completion has nothing
// to measure against and only sets the reference instant.
//
// A Window belongs to exactly one Estimator. Passing the same Window to New
// twice panics, samples of two work streams would otherwise be mixed.
type Window struct {
	size    int
	samples []time.Duration // ring buffer, oldest at head
	head    int
	last    time.Time
	seen    bool
	owned   bool
}

var _ Strategy = &Window{}

// NewWindow returns a Window keeping the last size samples.
func NewWindow(size int) (*Window, error) {
	if size < 1 {
		return nil, errors.InvalidArgument("window size must be at least 1, got %d", size)
	}
	return &Window{
		size:    size,
		samples: make([]time.Duration, 0, size),
	}, nil
}

// claim marks w as used by an Estimator. It returns false if w already is.
func (w *Window) claim() bool {
	if w.owned {
		return false
	}
	w.owned = true
	return true
}

// Size returns the configured capacity.
func (w *Window) Size() int {
	return w.size
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return len(w.samples)
}

// Samples returns the held samples, oldest first.
func (w *Window) Samples() []time.Duration {
	out := make([]time.Duration, 0, len(w.samples))
	out = append(out, w.samples[w.head:]...)
	return append(out, w.samples[:w.head]...)
}

// Observe records the per-unit duration since the previous completion.
// Completing zero units is not a completion: the interval keeps running
// until units are actually reported.
func (w *Window) Observe(now time.Time, units int64) {
	if units == 0 {
		return
	}
	if w.seen {
		w.push(now.Sub(w.last) / time.Duration(units))
	}
	w.last = now
	w.seen = true
}

func (w *Window) push(sample time.Duration) {
	if len(w.samples) < w.size {
		w.samples = append(w.samples, sample)
		return
	}
	debug.Log("window full, evicting sample %v", w.samples[w.head])
	w.samples[w.head] = sample
	w.head = (w.head + 1) % w.size
}

// Remaining returns mean(samples) * remaining units. Without samples it
// falls back to the ratio over the whole elapsed time.
func (w *Window) Remaining(p Progress) time.Duration {
	remaining := p.RemainingUnits()
	if remaining == 0 {
		return 0
	}
	if len(w.samples) == 0 {
		if p.Completed == 0 {
			return MaxDuration
		}
		return scaleExact(p.Elapsed, remaining, p.Completed)
	}

	est := w.mean() * float64(remaining)
	if est >= math.MaxInt64 {
		return MaxDuration
	}
	return time.Duration(est)
}

func (w *Window) mean() float64 {
	var sum float64
	for _, s := range w.samples {
		sum += float64(s)
	}
	return sum / float64(len(w.samples))
}
