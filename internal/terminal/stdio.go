package terminal

import (
	"os"

	"golang.org/x/term"
)

// OutputIsTerminal reports whether fd is a terminal.
func OutputIsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// CanUpdateStatus returns true if status lines can be printed, the process
// output is not redirected to a file or pipe and TERM names a terminal that
// understands the cursor movement sequences.
func CanUpdateStatus(fd uintptr) bool {
	if !term.IsTerminal(int(fd)) {
		return false
	}
	t := os.Getenv("TERM")
	return t != "" && t != "dumb"
}

// Width returns the width of the terminal fd, or 0 if it cannot be determined.
func Width(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0
	}
	return w
}
