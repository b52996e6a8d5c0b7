package progress_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/restic/eta/internal/test"
	"github.com/restic/eta/internal/ui/progress"
)

func TestUpdater(t *testing.T) {
	var ncalls, nfinal atomic.Int64

	c := progress.NewUpdater(time.Millisecond, func(final bool) {
		if final {
			nfinal.Add(1)
		}
		ncalls.Add(1)
	})
	time.Sleep(20 * time.Millisecond)
	c.Done()

	test.Equals(t, int64(1), nfinal.Load())
	test.Assert(t, ncalls.Load() >= 2, "expected at least the initial and the final call, got %d", ncalls.Load())

	// Done is idempotent
	c.Done()
	test.Equals(t, int64(1), nfinal.Load())

	t.Log("number of calls:", ncalls.Load())
}

func TestUpdaterNoTicker(t *testing.T) {
	var calls []bool

	c := progress.NewUpdater(0, func(final bool) {
		calls = append(calls, final)
	})
	c.Done()

	// run only reads calls after Done returned, so there is no race
	test.Equals(t, []bool{false, true}, calls)
}

func TestUpdaterNil(t *testing.T) {
	// Shouldn't panic.
	var c *progress.Updater
	c.Done()
}
