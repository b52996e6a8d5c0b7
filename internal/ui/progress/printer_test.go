package progress

import (
	"testing"

	rtest "github.com/restic/eta/internal/test"
	"github.com/restic/eta/internal/ui"
)

func TestTerminalPrinterVerbosity(t *testing.T) {
	for _, test := range []struct {
		verbosity uint
		output    []string
	}{
		{0, nil},
		{1, []string{"p 1"}},
		{2, []string{"p 1", "v 2"}},
		{3, []string{"p 1", "v 2", "vv 3"}},
	} {
		term := &ui.MockTerminal{}
		p := NewTerminalPrinter(term, test.verbosity)
		p.P("p %d", 1)
		p.V("v %d", 2)
		p.VV("vv %d", 3)
		p.E("e %d", 0)

		rtest.Equals(t, test.output, term.Output)
		rtest.Equals(t, []string{"e 0"}, term.Errors)
	}
}
