package terminal

import (
	"bytes"
	"os"
	"testing"

	rtest "github.com/restic/eta/internal/test"
)

func TestControlSequences(t *testing.T) {
	var buf bytes.Buffer
	rtest.OK(t, ClearCurrentLine(&buf))
	rtest.Equals(t, "\r\x1b[2K", buf.String())

	buf.Reset()
	rtest.OK(t, MoveCursorUp(&buf, 2))
	rtest.Equals(t, "\r\x1b[1A\x1b[1A", buf.String())
}

func TestNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	rtest.OK(t, err)
	defer func() { _ = f.Close() }()

	rtest.Assert(t, !OutputIsTerminal(f.Fd()), "regular file reported as terminal")
	rtest.Assert(t, !CanUpdateStatus(f.Fd()), "regular file can update status")
	rtest.Equals(t, 0, Width(f.Fd()))
}
