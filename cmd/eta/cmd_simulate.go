package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/restic/eta/clock"
	"github.com/restic/eta/estimator"
	"github.com/restic/eta/internal/debug"
	"github.com/restic/eta/internal/errors"
	"github.com/restic/eta/internal/options"
	"github.com/restic/eta/internal/ui"
	"github.com/restic/eta/internal/ui/progress"
)

func newSimulateCommand() *cobra.Command {
	var opts SimulateOptions

	cmd := &cobra.Command{
		Use:   "simulate [flags]",
		Short: "Run a synthetic workload and show a live estimate",
		Long: `
The "simulate" command processes a synthetic workload of --total work units
with --workers goroutines and shows the elapsed time, the progress and the
estimated remaining time while it runs.

Work units are handed out in batches of --batch units at no more than --rate
units per second. Each unit costs simulate.unit-cost, varied by
simulate.jitter. Choose the estimator with --strategy.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments were invalid.
Exit status is 130 if the command was interrupted.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			term, cancel := setupTermstatus(&globalOptions)
			defer cancel()
			return runSimulate(cmd.Context(), opts, globalOptions, term)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// SimulateOptions bundles all options for the simulate command.
type SimulateOptions struct {
	Total   int64
	Workers int
	Rate    float64
	Batch   int64
}

func (opts *SimulateOptions) AddFlags(f *pflag.FlagSet) {
	f.Int64Var(&opts.Total, "total", 100, "number of work `units` to process")
	f.IntVar(&opts.Workers, "workers", 2, "number of concurrent `workers`")
	f.Float64Var(&opts.Rate, "rate", 20, "maximum `units` per second, 0 means unlimited")
	f.Int64Var(&opts.Batch, "batch", 1, "number of `units` completed at once")
}

// WorkloadOptions collects the extended options of the simulated workload.
type WorkloadOptions struct {
	UnitCost time.Duration `option:"unit-cost" help:"time a worker spends on one work unit (default: 10ms)"`
	Jitter   float64       `option:"jitter" help:"relative random variation of the unit cost, between 0 and 1 (default: 0)"`
}

func init() {
	options.Register("simulate", WorkloadOptions{})
}

func (opts SimulateOptions) check() error {
	switch {
	case opts.Total < 1:
		return usageError{errors.Errorf("--total must be at least 1, got %d", opts.Total)}
	case opts.Workers < 1:
		return usageError{errors.Errorf("--workers must be at least 1, got %d", opts.Workers)}
	case opts.Batch < 1:
		return usageError{errors.Errorf("--batch must be at least 1, got %d", opts.Batch)}
	case opts.Rate < 0:
		return usageError{errors.Errorf("--rate may not be negative, got %v", opts.Rate)}
	}
	return nil
}

func workloadOptions(gopts GlobalOptions) (WorkloadOptions, error) {
	cfg := WorkloadOptions{UnitCost: 10 * time.Millisecond}
	if err := gopts.extended.Extract("simulate").Apply("simulate", &cfg); err != nil {
		return cfg, err
	}
	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		return cfg, usageError{errors.Errorf("simulate.jitter must be between 0 and 1, got %v", cfg.Jitter)}
	}
	if cfg.UnitCost < 0 {
		return cfg, usageError{errors.Errorf("simulate.unit-cost may not be negative, got %v", cfg.UnitCost)}
	}
	return cfg, nil
}

func runSimulate(ctx context.Context, opts SimulateOptions, gopts GlobalOptions, term ui.Terminal) error {
	if err := opts.check(); err != nil {
		return err
	}
	workload, err := workloadOptions(gopts)
	if err != nil {
		return err
	}
	strategy, err := gopts.newStrategy()
	if err != nil {
		return err
	}

	printer := newPrinter(term, gopts)
	printer.V("simulating %d units with %d workers, strategy %v", opts.Total, opts.Workers, gopts.Strategy)

	est, err := estimator.New(clock.System{}, strategy).InitAndStart(opts.Total)
	if err != nil {
		return err
	}

	interval := calculateProgressInterval(!gopts.Quiet, gopts.JSON, term.CanUpdateStatus())
	tracker := progress.NewTracker(interval, est, newSimulateReporter(term, gopts))

	err = simulate(ctx, opts, workload, tracker)
	tracker.Done()
	if err != nil {
		return err
	}

	s := tracker.Snapshot()
	if !gopts.JSON {
		printer.P("processed %d units in %s (%s)", s.Completed, ui.FormatClock(s.Elapsed), ui.FormatRate(s.Completed, s.Elapsed))
	}
	return nil
}

// simulate feeds batches of work units through a rate limiter to the
// workers, which report every finished batch to tracker.
func simulate(ctx context.Context, opts SimulateOptions, workload WorkloadOptions, tracker *progress.Tracker) error {
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	limiter := rate.NewLimiter(limit, int(opts.Batch))

	wg, ctx := errgroup.WithContext(ctx)
	batches := make(chan int64)

	wg.Go(func() error {
		defer close(batches)
		for remaining := opts.Total; remaining > 0; {
			n := min(opts.Batch, remaining)
			if err := limiter.WaitN(ctx, int(n)); err != nil {
				return err
			}
			select {
			case batches <- n:
			case <-ctx.Done():
				return ctx.Err()
			}
			remaining -= n
		}
		return nil
	})

	for i := 0; i < opts.Workers; i++ {
		i := i
		wg.Go(func() error {
			for n := range batches {
				if err := work(ctx, unitCost(workload, n)); err != nil {
					return err
				}
				if err := tracker.Complete(n); err != nil {
					return err
				}
				debug.Log("worker %d completed %d units", i, n)
			}
			return nil
		})
	}

	return wg.Wait()
}

// unitCost returns the time spent on a batch of n units.
func unitCost(workload WorkloadOptions, n int64) time.Duration {
	d := time.Duration(n) * workload.UnitCost
	if workload.Jitter > 0 {
		f := 1 + workload.Jitter*(2*rand.Float64()-1)
		d = time.Duration(float64(d) * f)
	}
	return d
}

func work(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type statusUpdate struct {
	MessageType      string  `json:"message_type"` // "status" or "summary"
	TotalUnits       int64   `json:"total_units"`
	CompletedUnits   int64   `json:"completed_units"`
	PercentDone      float64 `json:"percent_done"`
	SecondsElapsed   uint64  `json:"seconds_elapsed"`
	SecondsRemaining *uint64 `json:"seconds_remaining,omitempty"`
}

func newStatusUpdate(s estimator.Snapshot, final bool) statusUpdate {
	u := statusUpdate{
		MessageType:    "status",
		TotalUnits:     s.Total,
		CompletedUnits: s.Completed,
		SecondsElapsed: uint64(s.Elapsed / time.Second),
	}
	if final {
		u.MessageType = "summary"
	}
	if s.Total > 0 {
		u.PercentDone = float64(s.Completed) / float64(s.Total)
	}
	if s.Remaining != estimator.MaxDuration {
		sec := uint64(s.Remaining / time.Second)
		u.SecondsRemaining = &sec
	}
	return u
}

// formatStatus returns the status line for s.
func formatStatus(s estimator.Snapshot) string {
	return fmt.Sprintf("[%s] %d/%d %s ETA %s",
		ui.FormatClock(s.Elapsed),
		s.Completed, s.Total,
		ui.FormatPercent(uint64(s.Completed), uint64(s.Total)),
		ui.FormatETA(s.Remaining))
}

func newSimulateReporter(term ui.Terminal, gopts GlobalOptions) progress.ReportFunc {
	if gopts.JSON {
		return func(s estimator.Snapshot, final bool) {
			term.Print(ui.ToJSONString(newStatusUpdate(s, final)))
		}
	}

	return func(s estimator.Snapshot, final bool) {
		if final {
			term.SetStatus(nil)
			return
		}
		term.SetStatus([]string{formatStatus(s)})
	}
}
