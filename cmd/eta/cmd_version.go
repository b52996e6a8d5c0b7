package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/restic/eta/internal/ui"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `
The "version" command prints detailed information about the build environment
and the version of this software.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupAdvanced,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			term, cancel := setupTermstatus(&globalOptions)
			defer cancel()
			printVersion(term, globalOptions.JSON)
			return nil
		},
	}
	return cmd
}

func printVersion(term ui.Terminal, json bool) {
	if json {
		type jsonVersion struct {
			MessageType string `json:"message_type"` // version
			Version     string `json:"version"`
			GoVersion   string `json:"go_version"`
			GoOS        string `json:"go_os"`
			GoArch      string `json:"go_arch"`
		}

		term.Print(ui.ToJSONString(jsonVersion{
			MessageType: "version",
			Version:     version,
			GoVersion:   runtime.Version(),
			GoOS:        runtime.GOOS,
			GoArch:      runtime.GOARCH,
		}))
		return
	}

	term.Print(fmt.Sprintf("eta %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH))
}
