package win32

import "errors"

// ErrCursorUnavailable is returned by the system cursor when user32 cannot
// be loaded.
var ErrCursorUnavailable = errors.New("win32: cursor position unavailable")
