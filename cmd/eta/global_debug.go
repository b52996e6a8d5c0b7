//go:build debug || profile

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/restic/eta/internal/errors"
)

type ProfileOptions struct {
	listen    string
	memPath   string
	cpuPath   string
	tracePath string
	blockPath string
}

var profileOpts ProfileOptions

func (opts *ProfileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.listen, "listen-profile", "", "listen on this `address:port` for memory profiling")
	f.StringVar(&opts.memPath, "mem-profile", "", "write memory profile to `dir`")
	f.StringVar(&opts.cpuPath, "cpu-profile", "", "write cpu profile to `dir`")
	f.StringVar(&opts.tracePath, "trace-profile", "", "write trace to `dir`")
	f.StringVar(&opts.blockPath, "block-profile", "", "write block profile to `dir`")
}

func registerProfiling(cmd *cobra.Command) {
	origPreRun := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if origPreRun != nil {
			if err := origPreRun(cmd, args); err != nil {
				return err
			}
		}
		return runProfile(&profileOpts)
	}

	profileOpts.AddFlags(cmd.PersistentFlags())
}

func runProfile(opts *ProfileOptions) error {
	if opts.listen != "" {
		fmt.Fprintf(os.Stderr, "running profile HTTP server on %v\n", opts.listen)
		go func() {
			err := http.ListenAndServe(opts.listen, nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "profile HTTP server listen failed: %v\n", err)
			}
		}()
	}

	profilesEnabled := 0
	if opts.memPath != "" {
		profilesEnabled++
	}
	if opts.cpuPath != "" {
		profilesEnabled++
	}
	if opts.tracePath != "" {
		profilesEnabled++
	}
	if opts.blockPath != "" {
		profilesEnabled++
	}

	if profilesEnabled > 1 {
		return errors.Fatal("only one profile (memory, CPU, trace, or block) may be activated at the same time")
	}

	var prof interface {
		Stop()
	}

	if opts.memPath != "" {
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.MemProfile, profile.ProfilePath(opts.memPath))
	} else if opts.cpuPath != "" {
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.CPUProfile, profile.ProfilePath(opts.cpuPath))
	} else if opts.tracePath != "" {
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.TraceProfile, profile.ProfilePath(opts.tracePath))
	} else if opts.blockPath != "" {
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.BlockProfile, profile.ProfilePath(opts.blockPath))
	}

	if prof != nil {
		AddCleanupHandler(func() error {
			prof.Stop()
			return nil
		})
	}

	return nil
}
