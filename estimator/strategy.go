package estimator

import (
	"math"
	"time"
)

// MaxDuration is returned by RemainingTime when no estimate is possible yet.
const MaxDuration = time.Duration(math.MaxInt64)

// Progress is the accounting state a Strategy estimates from.
type Progress struct {
	Total     int64
	Completed int64
	Elapsed   time.Duration
}

// RemainingUnits returns Total - Completed.
func (p Progress) RemainingUnits() int64 {
	return p.Total - p.Completed
}

// A Strategy turns progress into a remaining time estimate.
type Strategy interface {
	// Observe is called once per successful Estimator.CompleteWorkUnits,
	// before the units are added to the completed count.
	Observe(now time.Time, units int64)

	// Remaining returns the estimated time until all work is done, zero
	// when nothing remains, or MaxDuration when it cannot be estimated.
	Remaining(p Progress) time.Duration
}
