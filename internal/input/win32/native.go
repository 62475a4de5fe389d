// Package win32 translates Win32 window messages and raw input into
// normalized input events.
//
// The window procedure forwards every message as a *Message. WM_INPUT
// messages carry the RAWINPUT block already fetched with GetRawInputData.
package win32

// Window messages.
const (
	WM_KILLFOCUS = 0x0008
	WM_INPUT     = 0x00ff
	WM_KEYDOWN   = 0x0100
	WM_CHAR      = 0x0102
	WM_UNICHAR   = 0x0109
)

// UNICODE_NOCHAR is sent in WM_UNICHAR to probe for UTF-32 support.
const UNICODE_NOCHAR = 0xffff

// Raw input device types.
const (
	RIM_TYPEMOUSE    = 0
	RIM_TYPEKEYBOARD = 1
)

// Raw keyboard flags.
const (
	RI_KEY_BREAK = 0x01
	RI_KEY_E0    = 0x02
	RI_KEY_E1    = 0x04
)

// Raw mouse button flags.
const (
	RI_MOUSE_BUTTON_1_DOWN = 0x0001
	RI_MOUSE_BUTTON_1_UP   = 0x0002
	RI_MOUSE_BUTTON_2_DOWN = 0x0004
	RI_MOUSE_BUTTON_2_UP   = 0x0008
	RI_MOUSE_BUTTON_3_DOWN = 0x0010
	RI_MOUSE_BUTTON_3_UP   = 0x0020
	RI_MOUSE_BUTTON_4_DOWN = 0x0040
	RI_MOUSE_BUTTON_4_UP   = 0x0080
	RI_MOUSE_BUTTON_5_DOWN = 0x0100
	RI_MOUSE_BUTTON_5_UP   = 0x0200
	RI_MOUSE_WHEEL         = 0x0400
	RI_MOUSE_HWHEEL        = 0x0800
)

// WHEEL_DELTA is one wheel notch.
const WHEEL_DELTA = 120

// Message is one window message.
type Message struct {
	HWND   uintptr
	Msg    uint32
	WParam uintptr
	LParam uintptr

	// Raw is set for WM_INPUT.
	Raw *RawInput

	// Resizing is true while the window is in a size/move loop.
	Resizing bool
}

// RawInput is the decoded RAWINPUT block.
type RawInput struct {
	Type     uint32
	Keyboard RawKeyboard
	Mouse    RawMouse
}

// RawKeyboard mirrors RAWKEYBOARD.
type RawKeyboard struct {
	MakeCode uint16
	Flags    uint16
	VKey     uint16
	Message  uint32
}

// RawMouse mirrors RAWMOUSE.
type RawMouse struct {
	Flags       uint16
	ButtonFlags uint16
	ButtonData  uint16
	LastX       int32
	LastY       int32
}

// Cursor reports the cursor position in client coordinates of a window.
// A zero hwnd asks for screen coordinates.
type Cursor interface {
	ClientPosition(hwnd uintptr) (x, y int, ok bool)
}
