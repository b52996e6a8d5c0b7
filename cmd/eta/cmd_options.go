package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/restic/eta/internal/options"
	"github.com/restic/eta/internal/ui"
)

func newOptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print list of extended options",
		Long: `
The "options" command prints a list of extended options, which are set with
-o key=value.

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
			printOptions(term, options.List())
			return nil
		},
	}
	return cmd
}

func printOptions(term ui.Terminal, list []options.Help) {
	term.Print("All Extended Options:")
	var maxWidth int
	for _, opt := range list {
		if w := ui.DisplayWidth(opt.Key()); w > maxWidth {
			maxWidth = w
		}
	}
	for _, opt := range list {
		key := opt.Key()
		pad := strings.Repeat(" ", maxWidth-ui.DisplayWidth(key))
		term.Print(fmt.Sprintf("  %s%s  %s", key, pad, opt.Text))
	}
}
