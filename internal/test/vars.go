package test

import (
	"fmt"
	"os"
	"testing"
)

var (
	// RunWallClockTests enables tests that sleep on the real clock.
	RunWallClockTests = getBoolVar("ETA_TEST_WALLCLOCK", false)
)

func getBoolVar(name string, defaultValue bool) bool {
	if e := os.Getenv(name); e != "" {
		switch e {
		case "1", "true":
			return true
		case "0", "false":
			return false
		default:
			fmt.Fprintf(os.Stderr, "invalid value for variable %q, using default\n", name)
		}
	}

	return defaultValue
}

// SkipWallClock skips t unless ETA_TEST_WALLCLOCK is set.
func SkipWallClock(t testing.TB) {
	if !RunWallClockTests {
		t.Skip("wall clock test, set ETA_TEST_WALLCLOCK=1 to run")
	}
}
