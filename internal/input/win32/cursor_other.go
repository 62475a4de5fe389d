//go:build !windows

package win32

// SystemCursor is only available on Windows.
func SystemCursor() (Cursor, error) {
	return nil, ErrCursorUnavailable
}
