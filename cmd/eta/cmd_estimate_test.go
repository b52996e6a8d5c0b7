package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/restic/eta/estimator"
	rtest "github.com/restic/eta/internal/test"
	"github.com/restic/eta/internal/ui"
)

func testEstimate(t *testing.T, opts EstimateOptions, gopts GlobalOptions) (*ui.MockTerminal, error) {
	t.Helper()
	rtest.OK(t, gopts.PreRun())
	term := &ui.MockTerminal{}
	return term, runEstimate(context.TODO(), opts, gopts, term)
}

func TestEstimate(t *testing.T) {
	term, err := testEstimate(t, EstimateOptions{Total: 100, Done: 30, Elapsed: 90 * time.Second}, GlobalOptions{Strategy: "ratio"})
	rtest.OK(t, err)
	rtest.Equals(t, []string{"[00:01:30] 30/100 30.00% ETA 00:03:30"}, term.Output)
}

func TestEstimateWindowFallsBackToRatio(t *testing.T) {
	term, err := testEstimate(t, EstimateOptions{Total: 100, Done: 30, Elapsed: 90 * time.Second}, GlobalOptions{Strategy: "window"})
	rtest.OK(t, err)
	rtest.Equals(t, []string{"[00:01:30] 30/100 30.00% ETA 00:03:30"}, term.Output)
}

func TestEstimateNothingDone(t *testing.T) {
	term, err := testEstimate(t, EstimateOptions{Total: 10, Elapsed: time.Minute}, GlobalOptions{Strategy: "ratio"})
	rtest.OK(t, err)
	rtest.Equals(t, []string{"[00:01:00] 0/10 0.00% ETA " + ui.Infinity}, term.Output)
}

func TestEstimateVerbose(t *testing.T) {
	term, err := testEstimate(t, EstimateOptions{Total: 4, Done: 2, Elapsed: 4 * time.Second}, GlobalOptions{Strategy: "ratio", Verbose: 1})
	rtest.OK(t, err)
	rtest.Equals(t, []string{
		"strategy: ratio",
		"[00:00:04] 2/4 50.00% ETA 00:00:04",
		"rate: 0.50/s",
	}, term.Output)
}

func TestEstimateJSON(t *testing.T) {
	term, err := testEstimate(t, EstimateOptions{Total: 10, Done: 5, Elapsed: time.Second}, GlobalOptions{Strategy: "ratio", JSON: true})
	rtest.OK(t, err)
	rtest.Equals(t, 1, len(term.Output))

	var res estimateResult
	rtest.OK(t, json.Unmarshal([]byte(term.Output[0]), &res))
	rtest.Equals(t, "estimate", res.MessageType)
	rtest.Equals(t, int64(5), res.CompletedUnits)
	rtest.Assert(t, res.SecondsRemaining != nil, "seconds_remaining missing")
	rtest.Equals(t, uint64(1), *res.SecondsRemaining)
	rtest.Equals(t, "00:00:01", res.Remaining)
}

func TestEstimateJSONInfinite(t *testing.T) {
	term, err := testEstimate(t, EstimateOptions{Total: 10, Elapsed: time.Second}, GlobalOptions{Strategy: "ratio", JSON: true})
	rtest.OK(t, err)
	rtest.Assert(t, strings.Contains(term.Output[0], `"seconds_remaining":null`), "unexpected output %q", term.Output[0])
	rtest.Assert(t, strings.Contains(term.Output[0], `"remaining":"`+ui.Infinity+`"`), "unexpected output %q", term.Output[0])
}

func TestEstimateInvalid(t *testing.T) {
	for _, opts := range []EstimateOptions{
		{Total: 0, Done: 0, Elapsed: time.Second},
		{Total: 10, Done: 11, Elapsed: time.Second},
		{Total: 10, Done: -1, Elapsed: time.Second},
		{Total: 10, Done: 1, Elapsed: -time.Second},
	} {
		_, err := testEstimate(t, opts, GlobalOptions{Strategy: "ratio"})
		rtest.Assert(t, err != nil, "expected error for %#v", opts)
		rtest.Equals(t, 2, exitCode(err))
	}
}

func TestEstimateReplay(t *testing.T) {
	est, err := estimate(EstimateOptions{Total: 3, Done: 3, Elapsed: time.Hour}, estimator.NewRatio())
	rtest.OK(t, err)
	rtest.Equals(t, time.Duration(0), est.RemainingTime())
	rtest.Equals(t, time.Hour, est.ElapsedTime())
}
