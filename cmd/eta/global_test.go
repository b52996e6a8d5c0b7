package main

import (
	"testing"
	"time"

	"github.com/restic/eta/estimator"
	"github.com/restic/eta/internal/errors"
	rtest "github.com/restic/eta/internal/test"
)

func TestPreRunVerbosity(t *testing.T) {
	for _, test := range []struct {
		quiet     bool
		verbose   int
		verbosity uint
	}{
		{false, 0, 1},
		{true, 0, 0},
		{false, 1, 2},
		{false, 2, 3},
		{false, 5, 3},
	} {
		gopts := GlobalOptions{Quiet: test.quiet, Verbose: test.verbose, Strategy: "ratio"}
		rtest.OK(t, gopts.PreRun())
		rtest.Equals(t, test.verbosity, gopts.verbosity)
	}
}

func TestPreRunInvalid(t *testing.T) {
	for _, gopts := range []GlobalOptions{
		{Quiet: true, Verbose: 1, Strategy: "ratio"},
		{Strategy: "median"},
		{Strategy: "ratio", Options: []string{"=1"}},
	} {
		err := gopts.PreRun()
		rtest.Assert(t, err != nil, "expected error for %#v", gopts)
		rtest.Equals(t, 2, exitCode(err))
	}
}

func TestPreRunNormalizesStrategy(t *testing.T) {
	gopts := GlobalOptions{Strategy: " Window "}
	rtest.OK(t, gopts.PreRun())
	rtest.Equals(t, "window", gopts.Strategy)
}

func TestNewStrategy(t *testing.T) {
	gopts := GlobalOptions{Strategy: "ratio"}
	rtest.OK(t, gopts.PreRun())
	s, err := gopts.newStrategy()
	rtest.OK(t, err)
	_, ok := s.(estimator.Ratio)
	rtest.Assert(t, ok, "want Ratio, got %T", s)

	gopts = GlobalOptions{Strategy: "window"}
	rtest.OK(t, gopts.PreRun())
	s, err = gopts.newStrategy()
	rtest.OK(t, err)
	rtest.Equals(t, estimator.DefaultWindowSize, s.(*estimator.Window).Size())

	gopts = GlobalOptions{Strategy: "window", Options: []string{"window.size=7"}}
	rtest.OK(t, gopts.PreRun())
	s, err = gopts.newStrategy()
	rtest.OK(t, err)
	rtest.Equals(t, 7, s.(*estimator.Window).Size())
}

func TestNewStrategyInvalidWindow(t *testing.T) {
	gopts := GlobalOptions{Strategy: "window", Options: []string{"window.size=0"}}
	rtest.OK(t, gopts.PreRun())
	_, err := gopts.newStrategy()
	rtest.Assert(t, errors.IsFatal(err), "want fatal error, got %v", err)
	rtest.ErrorIs(t, err, estimator.ErrInvalidArgument)
	rtest.Equals(t, 2, exitCode(err))

	gopts = GlobalOptions{Strategy: "window", Options: []string{"window.length=3"}}
	rtest.OK(t, gopts.PreRun())
	_, err = gopts.newStrategy()
	rtest.Equals(t, "Fatal: option window.length is not known", err.Error())
}

func TestCalculateProgressInterval(t *testing.T) {
	t.Setenv("ETA_PROGRESS_FPS", "")
	rtest.Equals(t, time.Second/10, calculateProgressInterval(true, false, true))
	rtest.Equals(t, time.Second/10, calculateProgressInterval(true, true, false))
	rtest.Equals(t, time.Duration(0), calculateProgressInterval(true, false, false))
	rtest.Equals(t, time.Duration(0), calculateProgressInterval(false, true, true))

	t.Setenv("ETA_PROGRESS_FPS", "2")
	rtest.Equals(t, time.Second/2, calculateProgressInterval(false, false, false))

	t.Setenv("ETA_PROGRESS_FPS", "1000")
	maxFPS := 60.0
	rtest.Equals(t, time.Duration(float64(time.Second)/maxFPS), calculateProgressInterval(true, false, false))
}
