package terminal

import (
	"github.com/restic/eta/internal/debug"

	"golang.org/x/sys/unix"
)

// IsProcessBackground reports whether the current process is running in the
// background. fd must be a file descriptor for the terminal.
func IsProcessBackground(fd uintptr) bool {
	bg, err := isProcessBackground(fd)
	if err != nil {
		debug.Log("Can't check if we are in the background. Using default behaviour. Error: %s\n", err.Error())
		return false
	}
	return bg
}

func isProcessBackground(fd uintptr) (bool, error) {
	// pid_t is 32 bit even on 64 bit Linux, IoctlGetInt is wrong on
	// big-endian platforms.
	pid, err := unix.IoctlGetUint32(int(fd), unix.TIOCGPGRP)
	return int(pid) != unix.Getpgrp(), err
}
