package estimator_test

import (
	"testing"
	"time"

	"github.com/restic/eta/estimator"
	rtest "github.com/restic/eta/internal/test"
)

func TestNewWindow(t *testing.T) {
	w := mustWindow(t, estimator.DefaultWindowSize)
	rtest.Equals(t, 3, w.Size())
	rtest.Equals(t, 0, w.Len())

	w = mustWindow(t, 5)
	rtest.Equals(t, 5, w.Size())

	for _, size := range []int{0, -1} {
		_, err := estimator.NewWindow(size)
		rtest.ErrorIs(t, err, estimator.ErrInvalidArgument)
	}
}

func TestWindowFirstCompletionAddsNoSample(t *testing.T) {
	w := mustWindow(t, 3)
	est, clk := newStarted(t, w, 100)

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(20))
	rtest.Equals(t, 0, w.Len())

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(20))
	rtest.Equals(t, 1, w.Len())

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(20))
	rtest.Equals(t, 2, w.Len())
	rtest.Equals(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond}, w.Samples())
}

func TestWindowEviction(t *testing.T) {
	w := mustWindow(t, 2)
	est, clk := newStarted(t, w, 100)

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(10))
	for i := 0; i < 3; i++ {
		clk.Advance(time.Second)
		rtest.OK(t, est.CompleteWorkUnits(10))
		rtest.Assert(t, w.Len() <= w.Size(), "window holds %d samples, size %d", w.Len(), w.Size())
	}
	rtest.Equals(t, 2, w.Len())
}

func TestWindowUsesRecentSamplesOnly(t *testing.T) {
	w := mustWindow(t, 2)
	est, clk := newStarted(t, w, 100)

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(10))

	clk.Advance(4 * time.Second) // 400ms per unit, evicted below
	rtest.OK(t, est.CompleteWorkUnits(10))
	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(10))
	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(10))

	rtest.Equals(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, w.Samples())
	// 60 units left at 100ms, the evicted 400ms sample would make it 12s
	rtest.Equals(t, 6*time.Second, est.RemainingTime())
}

func TestWindowSampleOrder(t *testing.T) {
	w := mustWindow(t, 3)
	est, clk := newStarted(t, w, 1000)

	rtest.OK(t, est.CompleteWorkUnits(1))
	for i := 1; i <= 5; i++ {
		clk.Advance(time.Duration(i) * time.Second)
		rtest.OK(t, est.CompleteWorkUnits(1))
	}
	rtest.Equals(t, []time.Duration{3 * time.Second, 4 * time.Second, 5 * time.Second}, w.Samples())
}

func TestWindowBatchAverage(t *testing.T) {
	w := mustWindow(t, 3)
	est, clk := newStarted(t, w, 100)

	rtest.OK(t, est.CompleteWorkUnits(1))
	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(3))
	// integer division per unit
	rtest.Equals(t, []time.Duration{333333333}, w.Samples())
	rtest.Equals(t, 96*333333333*time.Nanosecond, est.RemainingTime())
}

func TestWindowRemaining(t *testing.T) {
	w := mustWindow(t, 3)
	est, clk := newStarted(t, w, 100)
	rtest.Equals(t, estimator.MaxDuration, est.RemainingTime())

	// one completion, no sample yet: ratio over the whole elapsed time
	clk.Advance(2 * time.Second)
	rtest.OK(t, est.CompleteWorkUnits(20))
	rtest.Equals(t, 0, w.Len())
	rtest.Equals(t, 8*time.Second, est.RemainingTime())

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(20))
	rtest.Equals(t, 60*50*time.Millisecond, est.RemainingTime())

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(60))
	rtest.Equals(t, time.Duration(0), est.RemainingTime())
}

func TestWindowAdaptsToFasterRate(t *testing.T) {
	w := mustWindow(t, 2)
	est, clk := newStarted(t, w, 100)

	clk.Advance(2 * time.Second) // slow start
	rtest.OK(t, est.CompleteWorkUnits(20))
	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(20))

	// the ratio over the whole run would say 4.5s
	rtest.Equals(t, 3*time.Second, est.RemainingTime())
}

func TestWindowZeroUnits(t *testing.T) {
	w := mustWindow(t, 3)
	est, clk := newStarted(t, w, 10)

	rtest.OK(t, est.CompleteWorkUnits(0))
	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(1))
	rtest.Equals(t, 0, w.Len())

	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(0))
	rtest.Equals(t, 0, w.Len())

	// the interval spans the zero-unit call
	clk.Advance(time.Second)
	rtest.OK(t, est.CompleteWorkUnits(1))
	rtest.Equals(t, []time.Duration{2 * time.Second}, w.Samples())
}

func TestWindowUnchangedOnError(t *testing.T) {
	w := mustWindow(t, 3)
	est, clk := newStarted(t, w, 10)

	rtest.OK(t, est.CompleteWorkUnits(5))
	clk.Advance(time.Second)
	rtest.ErrorIs(t, est.CompleteWorkUnits(6), estimator.ErrInvalidState)
	rtest.ErrorIs(t, est.CompleteWorkUnits(-1), estimator.ErrInvalidArgument)
	rtest.Equals(t, 0, w.Len())

	rtest.OK(t, est.CompleteWorkUnits(1))
	rtest.Equals(t, []time.Duration{time.Second}, w.Samples())
}

func TestWindowSaturates(t *testing.T) {
	w := mustWindow(t, 1)
	est, clk := newStarted(t, w, 1<<62)

	rtest.OK(t, est.CompleteWorkUnits(1))
	clk.Advance(time.Hour)
	rtest.OK(t, est.CompleteWorkUnits(1))
	rtest.Equals(t, estimator.MaxDuration, est.RemainingTime())
}

func TestWindowCannotBeShared(t *testing.T) {
	w := mustWindow(t, 2)
	first, clk := newStarted(t, w, 10)

	defer func() {
		rtest.Assert(t, recover() != nil, "reusing a Window must panic")

		// the first estimator keeps working on its own samples
		rtest.OK(t, first.CompleteWorkUnits(1))
		clk.Advance(time.Second)
		rtest.OK(t, first.CompleteWorkUnits(1))
		rtest.Equals(t, []time.Duration{time.Second}, w.Samples())
	}()

	estimator.New(clk, w)
}
