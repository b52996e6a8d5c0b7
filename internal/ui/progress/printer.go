package progress

import (
	"fmt"

	"github.com/restic/eta/internal/ui"
)

// A Printer prints messages at different verbosity levels.
// It must be safe to call its methods from concurrent goroutines.
type Printer interface {
	E(msg string, args ...interface{})
	P(msg string, args ...interface{})
	V(msg string, args ...interface{})
	VV(msg string, args ...interface{})
}

// NoopPrinter discards all messages
type NoopPrinter struct{}

var _ Printer = (*NoopPrinter)(nil)

func (*NoopPrinter) E(msg string, args ...interface{}) {}

func (*NoopPrinter) P(msg string, args ...interface{}) {}

func (*NoopPrinter) V(msg string, args ...interface{}) {}

func (*NoopPrinter) VV(msg string, args ...interface{}) {}

// TerminalPrinter writes messages to a ui.Terminal. Errors are always
// printed, P needs verbosity 1, V needs 2 and VV needs 3.
type TerminalPrinter struct {
	term      ui.Terminal
	verbosity uint
}

var _ Printer = (*TerminalPrinter)(nil)

func NewTerminalPrinter(term ui.Terminal, verbosity uint) *TerminalPrinter {
	return &TerminalPrinter{term: term, verbosity: verbosity}
}

func (p *TerminalPrinter) E(msg string, args ...interface{}) {
	p.term.Error(fmt.Sprintf(msg, args...))
}

func (p *TerminalPrinter) P(msg string, args ...interface{}) {
	p.print(1, msg, args...)
}

func (p *TerminalPrinter) V(msg string, args ...interface{}) {
	p.print(2, msg, args...)
}

func (p *TerminalPrinter) VV(msg string, args ...interface{}) {
	p.print(3, msg, args...)
}

func (p *TerminalPrinter) print(level uint, msg string, args ...interface{}) {
	if p.verbosity >= level {
		p.term.Print(fmt.Sprintf(msg, args...))
	}
}
