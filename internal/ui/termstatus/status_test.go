package termstatus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	rtest "github.com/restic/eta/internal/test"
)

func TestSanitizeLines(t *testing.T) {
	lines := sanitizeLines([]string{"first", "second\tline", "third"}, 0)
	rtest.Equals(t, []string{"first\n", "\"second\\tline\"\n", "third"}, lines)
}

func TestSanitizeLinesTruncate(t *testing.T) {
	lines := sanitizeLines([]string{"0123456789"}, 7)
	rtest.Equals(t, []string{"01234"}, lines)
}

func TestPlainOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	term := New(&stdout, &stderr, false)
	rtest.Assert(t, !term.CanUpdateStatus(), "buffer must not support status updates")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		term.Run(ctx)
		close(done)
	}()

	term.Print("hello")
	term.Error("oops\n")
	term.SetStatus([]string{"[00:00:01] 1/2 50.00%"})
	term.Flush()
	cancel()
	<-done

	rtest.Equals(t, "hello\n[00:00:01] 1/2 50.00%\n", stdout.String())
	rtest.Equals(t, "oops\n", stderr.String())
}

func TestQuietDropsStatus(t *testing.T) {
	var stdout bytes.Buffer
	term, cleanup := Setup(&stdout, &stdout, true)
	term.SetStatus([]string{"hidden"})
	term.Print("shown")
	cleanup()

	rtest.Assert(t, !strings.Contains(stdout.String(), "hidden"), "status printed in quiet mode: %q", stdout.String())
	rtest.Equals(t, "shown\n", stdout.String())
}

func TestClosedTerminalDoesNotBlock(t *testing.T) {
	var stdout bytes.Buffer
	term, cleanup := Setup(&stdout, &stdout, false)
	cleanup()

	// all of these must return once Run has exited
	term.Print("late")
	term.SetStatus([]string{"late"})
	term.Flush()
}
