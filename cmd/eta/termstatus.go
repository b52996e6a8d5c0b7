package main

import (
	"github.com/restic/eta/internal/ui/termstatus"
)

// setupTermstatus creates a new termstatus and reroutes gopts.{stdout,stderr}
// to it. The returned function must be called to shut down the termstatus.
//
// Expected usage:
//
//	term, cancel := setupTermstatus(&globalOptions)
//	defer cancel()
//	// do stuff
func setupTermstatus(gopts *GlobalOptions) (*termstatus.Terminal, func()) {
	// status lines are never mixed into JSON output
	term, shutdown := termstatus.Setup(gopts.stdout, gopts.stderr, gopts.Quiet || gopts.JSON)

	prevStdout, prevStderr := gopts.stdout, gopts.stderr
	stdout, stderr := termstatus.WrapStdio(term)
	gopts.stdout, gopts.stderr = stdout, stderr

	return term, func() {
		// flush partial lines while the terminal is still running
		_ = stdout.Close()
		_ = stderr.Close()
		gopts.stdout, gopts.stderr = prevStdout, prevStderr
		shutdown()
	}
}
