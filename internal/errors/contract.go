package errors

import stderrors "errors"

// Contract violations. Both are caller mistakes, never transient failures,
// so nothing in this module retries on them.
var (
	// ErrInvalidArgument is returned for negative work unit counts, a
	// non-positive total and window sizes below one.
	ErrInvalidArgument = stderrors.New("invalid argument")

	// ErrInvalidState is returned when an operation is not allowed in the
	// current state, e.g. starting twice or completing more work than remains.
	ErrInvalidState = stderrors.New("invalid state")
)

// InvalidArgument returns an error matching ErrInvalidArgument with the
// formatted message and a stack trace attached.
func InvalidArgument(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidArgument, format, args...)
}

// InvalidState returns an error matching ErrInvalidState with the formatted
// message and a stack trace attached.
func InvalidState(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidState, format, args...)
}

// IsContractViolation reports whether err is ErrInvalidArgument or
// ErrInvalidState.
func IsContractViolation(err error) bool {
	return Is(err, ErrInvalidArgument) || Is(err, ErrInvalidState)
}
