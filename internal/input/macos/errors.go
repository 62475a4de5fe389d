package macos

import "errors"

// ErrNoSystem is returned when no session state reader is available.
var ErrNoSystem = errors.New("macos: session input state unavailable")
