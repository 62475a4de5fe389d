package x11

import "errors"

// ErrNoDisplay is returned when the translator is built without a display.
var ErrNoDisplay = errors.New("x11: no display connection")
