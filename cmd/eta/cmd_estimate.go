package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/restic/eta/clock"
	"github.com/restic/eta/estimator"
	"github.com/restic/eta/internal/errors"
	"github.com/restic/eta/internal/ui"
)

func newEstimateCommand() *cobra.Command {
	var opts EstimateOptions

	cmd := &cobra.Command{
		Use:   "estimate --total N --done D --elapsed DURATION",
		Short: "Estimate the remaining time for a given progress",
		Long: `
The "estimate" command prints the remaining time of a process that has
completed --done of --total work units in --elapsed time.

With the window strategy there is only a single observation, so the result
is the same as for the ratio strategy.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments were invalid.
`,
		Example:           `eta estimate --total 100 --done 30 --elapsed 1m30s`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			term, cancel := setupTermstatus(&globalOptions)
			defer cancel()
			return runEstimate(cmd.Context(), opts, globalOptions, term)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// EstimateOptions bundles all options for the estimate command.
type EstimateOptions struct {
	Total   int64
	Done    int64
	Elapsed time.Duration
}

func (opts *EstimateOptions) AddFlags(f *pflag.FlagSet) {
	f.Int64Var(&opts.Total, "total", 0, "total number of work `units`")
	f.Int64Var(&opts.Done, "done", 0, "number of completed work `units`")
	f.DurationVar(&opts.Elapsed, "elapsed", 0, "time spent so far, e.g. 1m30s")
}

type estimateResult struct {
	MessageType      string  `json:"message_type"` // "estimate"
	TotalUnits       int64   `json:"total_units"`
	CompletedUnits   int64   `json:"completed_units"`
	SecondsElapsed   uint64  `json:"seconds_elapsed"`
	SecondsRemaining *uint64 `json:"seconds_remaining"`
	Elapsed          string  `json:"elapsed"`
	Remaining        string  `json:"remaining"`
}

// estimate replays the given progress on a manual clock.
func estimate(opts EstimateOptions, strategy estimator.Strategy) (*estimator.Estimator, error) {
	if opts.Elapsed < 0 {
		return nil, usageError{errors.Errorf("--elapsed may not be negative, got %v", opts.Elapsed)}
	}

	clk := clock.NewManual(time.Time{})
	est, err := estimator.New(clk, strategy).InitAndStart(opts.Total)
	if err != nil {
		return nil, errors.Fatalf("invalid --total: %v", err)
	}

	clk.Advance(opts.Elapsed)
	if err := est.CompleteWorkUnits(opts.Done); err != nil {
		return nil, errors.Fatalf("invalid --done: %v", err)
	}
	return est, nil
}

func runEstimate(_ context.Context, opts EstimateOptions, gopts GlobalOptions, term ui.Terminal) error {
	strategy, err := gopts.newStrategy()
	if err != nil {
		return err
	}
	est, err := estimate(opts, strategy)
	if err != nil {
		return err
	}

	s := est.Snapshot()
	if gopts.JSON {
		res := estimateResult{
			MessageType:    "estimate",
			TotalUnits:     s.Total,
			CompletedUnits: s.Completed,
			SecondsElapsed: uint64(s.Elapsed / time.Second),
			Elapsed:        est.ElapsedTimeAsString(),
			Remaining:      est.RemainingTimeAsString(),
		}
		if s.Remaining != estimator.MaxDuration {
			sec := uint64(s.Remaining / time.Second)
			res.SecondsRemaining = &sec
		}
		term.Print(ui.ToJSONString(res))
		return nil
	}

	printer := newPrinter(term, gopts)
	printer.V("strategy: %v", gopts.Strategy)
	printer.P("%s", formatStatus(s))
	printer.V("rate: %s", ui.FormatRate(s.Completed, s.Elapsed))
	return nil
}
