//go:build windows

package win32

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos   = user32.NewProc("GetCursorPos")
	procScreenToClient = user32.NewProc("ScreenToClient")
)

type point struct {
	X, Y int32
}

type systemCursor struct{}

// SystemCursor returns the Cursor backed by user32.
func SystemCursor() (Cursor, error) {
	if err := procGetCursorPos.Find(); err != nil {
		return nil, ErrCursorUnavailable
	}
	if err := procScreenToClient.Find(); err != nil {
		return nil, ErrCursorUnavailable
	}
	return systemCursor{}, nil
}

func (systemCursor) ClientPosition(hwnd uintptr) (x, y int, ok bool) {
	var pt point
	if r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r == 0 {
		return 0, 0, false
	}
	if hwnd != 0 {
		if r, _, _ := procScreenToClient.Call(hwnd, uintptr(unsafe.Pointer(&pt))); r == 0 {
			return 0, 0, false
		}
	}
	return int(pt.X), int(pt.Y), true
}
