package main

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/restic/eta/estimator"
	"github.com/restic/eta/internal/errors"
	"github.com/restic/eta/internal/options"
	"github.com/restic/eta/internal/ui"
	"github.com/restic/eta/internal/ui/progress"
)

var version = "0.1.0-dev (compiled manually)"

// GlobalOptions hold all global options for eta.
type GlobalOptions struct {
	Quiet    bool
	Verbose  int
	JSON     bool
	Strategy string

	stdout io.Writer
	stderr io.Writer

	// verbosity is set as follows:
	//  0 means: don't print any messages except errors, this is used when --quiet is specified
	//  1 is the default: print essential messages
	//  2 means: print more messages, this is used when --verbose is specified
	//  3 means: print very detailed messages, this is used when --verbose=2 is specified
	verbosity uint

	Options []string

	extended options.Options
}

// WindowOptions collects the extended options of the window strategy.
type WindowOptions struct {
	Size int `option:"size" help:"number of recent completions the window strategy averages (default: 3)"`
}

func init() {
	options.Register("window", WindowOptions{})
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not output the progress status")
	// use empty parameter name as `-v, --verbose n` instead of the correct `--verbose=n` is confusing
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose (specify multiple times or a level using --verbose=n``, max level/times is 2)")
	f.BoolVarP(&opts.JSON, "json", "", false, "set output mode to JSON for commands that support it")
	f.StringVar(&opts.Strategy, "strategy", "ratio", "estimation `strategy`, one of (ratio|window) (default: $ETA_STRATEGY)")
	f.StringSliceVarP(&opts.Options, "option", "o", []string{}, "set extended option (`key=value`, can be specified multiple times)")

	if s := os.Getenv("ETA_STRATEGY"); s != "" {
		opts.Strategy = s
	}
}

func (opts *GlobalOptions) PreRun() error {
	// set verbosity, default is one
	opts.verbosity = 1
	if opts.Quiet && opts.Verbose > 0 {
		return usageError{errors.New("--quiet and --verbose cannot be specified at the same time")}
	}

	switch {
	case opts.Verbose >= 2:
		opts.verbosity = 3
	case opts.Verbose > 0:
		opts.verbosity = 2
	case opts.Quiet:
		opts.verbosity = 0
	}

	opts.Strategy = strings.ToLower(strings.TrimSpace(opts.Strategy))
	switch opts.Strategy {
	case "ratio", "window":
	default:
		return usageError{errors.Errorf("unknown strategy %q, valid are ratio and window", opts.Strategy)}
	}

	// parse extended options
	extendedOpts, err := options.Parse(opts.Options)
	if err != nil {
		return usageError{err}
	}
	opts.extended = extendedOpts
	return nil
}

var globalOptions = GlobalOptions{
	stdout: os.Stdout,
	stderr: os.Stderr,
}

// newStrategy builds the estimation strategy selected by --strategy,
// configured from the extended options.
func (opts *GlobalOptions) newStrategy() (estimator.Strategy, error) {
	if opts.Strategy != "window" {
		return estimator.NewRatio(), nil
	}

	cfg := WindowOptions{Size: estimator.DefaultWindowSize}
	if err := opts.extended.Extract("window").Apply("window", &cfg); err != nil {
		return nil, err
	}

	w, err := estimator.NewWindow(cfg.Size)
	if err != nil {
		return nil, errors.Fatalf("cannot build estimator: %v", err)
	}
	return w, nil
}

// calculateProgressInterval returns the interval configured via
// ETA_PROGRESS_FPS, or a default interval. Zero disables periodic updates.
func calculateProgressInterval(show bool, json bool, canUpdateStatus bool) time.Duration {
	interval := time.Second / 10
	fps, err := strconv.ParseFloat(os.Getenv("ETA_PROGRESS_FPS"), 64)
	if err == nil && fps > 0 {
		if fps > 60 {
			fps = 60
		}
		interval = time.Duration(float64(time.Second) / fps)
	} else if !json && !canUpdateStatus || !show {
		interval = 0
	}
	return interval
}

func newPrinter(term ui.Terminal, gopts GlobalOptions) progress.Printer {
	if gopts.JSON {
		// only machine readable output on stdout
		return progress.NewTerminalPrinter(term, 0)
	}
	return progress.NewTerminalPrinter(term, gopts.verbosity)
}
