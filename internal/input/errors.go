package input

import (
	"errors"
	"fmt"
)

// ErrInit matches every *InitError.
var ErrInit = errors.New("input: initialization failed")

// InitError reports a failure to bring up a Module.
type InitError struct {
	// Stage is "config" or "translator".
	Stage string

	// Platform is the translator being built, if any.
	Platform string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("input: initialize %s %s: %v", e.Stage, e.Platform, e.Err)
	}
	return fmt.Sprintf("input: initialize %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInit.
func (e *InitError) Is(target error) bool {
	return target == ErrInit
}
