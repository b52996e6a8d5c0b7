package progress

import (
	"time"

	"github.com/restic/eta/internal/debug"
	"github.com/restic/eta/internal/ui/signals"
)

// An UpdateFunc is a callback for an Updater.
//
// The final argument is true if Updater.Done has been called,
// which means that the current call will be the last.
type UpdateFunc func(final bool)

// An Updater controls a goroutine that periodically calls an UpdateFunc.
//
// The UpdateFunc is also called when SIGUSR1 (or SIGINFO, on BSD) is received.
type Updater struct {
	report  UpdateFunc
	stopped chan struct{} // Closed by Done.
	done    chan struct{} // Closed by run.
}

// NewUpdater starts a new Updater. An interval of zero or less disables the
// ticker, reports then only happen on signals and on Done.
func NewUpdater(interval time.Duration, report UpdateFunc) *Updater {
	c := &Updater{
		report:  report,
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.run(interval)
	return c
}

// Done tells an Updater to stop and waits for it to report its final value.
// Later calls do nothing.
func (c *Updater) Done() {
	if c == nil {
		return
	}
	select {
	case <-c.stopped:
	default:
		close(c.stopped)
	}
	<-c.done
}

func (c *Updater) run(interval time.Duration) {
	defer close(c.done)
	c.report(false)

	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	signalsCh := signals.GetProgressChannel()
	for {
		select {
		case <-tick:
		case sig := <-signalsCh:
			debug.Log("Signal received: %v\n", sig)
		case <-c.stopped:
			c.report(true)
			return
		}

		c.report(false)
	}
}
