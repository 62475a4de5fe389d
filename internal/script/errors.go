package script

import "errors"

// ErrClosed is returned when running a script on a closed Runner.
var ErrClosed = errors.New("script: runner closed")

// Error reports a script failure.
type Error struct {
	// Script is the file path or chunk name.
	Script string

	// Err is the Lua error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "script " + e.Script + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
