package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/restic/eta/internal/debug"
	"github.com/restic/eta/internal/errors"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

var cmdGroupDefault = "default"
var cmdGroupAdvanced = "advanced"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eta",
		Short: "Estimate the remaining time of long running work",
		Long: `
eta estimates how long a process made of a known number of work units will
still take, based on the progress observed so far.

The "simulate" command runs a synthetic workload and shows a live estimate,
"estimate" computes a one-shot estimate from a given progress.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return globalOptions.PreRun()
		},
	}

	cmd.AddGroup(
		&cobra.Group{
			ID:    cmdGroupDefault,
			Title: "Available Commands:",
		},
		&cobra.Group{
			ID:    cmdGroupAdvanced,
			Title: "Advanced Options:",
		},
	)

	globalOptions.AddFlags(cmd.PersistentFlags())

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.AddCommand(
		newEstimateCommand(),
		newOptionsCommand(),
		newSimulateCommand(),
		newVersionCommand(),
	)

	registerProfiling(cmd)

	return cmd
}

// usageError marks errors caused by invalid command line arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var ue usageError
	return errors.As(err, &ue) || errors.IsContractViolation(err)
}

func printExitError(code int, message string) {
	if globalOptions.JSON {
		type jsonExitError struct {
			MessageType string `json:"message_type"` // exit_error
			Code        int    `json:"code"`
			Message     string `json:"message"`
		}

		jsonS := jsonExitError{
			MessageType: "exit_error",
			Code:        code,
			Message:     message,
		}

		err := json.NewEncoder(globalOptions.stderr).Encode(jsonS)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "JSON encode failed: %v\n", err)
		}
		return
	}
	_, _ = fmt.Fprintf(globalOptions.stderr, "%v\n", message)
}

// exitCode maps the error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case isUsageError(err):
		return 2
	default:
		return 1
	}
}

func exitMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.IsFatal(err):
		return err.Error()
	case isUsageError(err):
		return fmt.Sprintf("Fatal: %v\nrun `eta help` for usage", err)
	default:
		return fmt.Sprintf("%+v", err)
	}
}

func main() {
	debug.Log("main %#v", os.Args)
	debug.Log("eta %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ctx := createGlobalContext()
	err := newRootCommand().ExecuteContext(ctx)
	if err == nil {
		err = ctx.Err()
	}

	code := exitCode(err)
	if code != 0 {
		printExitError(code, exitMessage(err))
	}
	Exit(code)
}
