// Package x11 translates X11 window events into normalized input events.
//
// The package does not link Xlib. The window layer hands over each XEvent
// as an *Event and supplies a Display (and optionally a per-window
// InputContext) wrapping the Xlib lookup calls.
package x11

// Event types, from X.h.
const (
	KeyPress      = 2
	KeyRelease    = 3
	ButtonPress   = 4
	ButtonRelease = 5
	MotionNotify  = 6
	FocusIn       = 9
	FocusOut      = 10
	MappingNotify = 34
)

// MappingNotify requests.
const (
	MappingModifier = 0
	MappingKeyboard = 1
	MappingPointer  = 2
)

// Key and button state masks.
const (
	ShiftMask   = 1 << 0
	LockMask    = 1 << 1
	ControlMask = 1 << 2
	Mod1Mask    = 1 << 3
	Mod2Mask    = 1 << 4
	Mod4Mask    = 1 << 6
)

// Status is the result of an input method lookup.
type Status int

// Lookup statuses, from Xlib.h.
const (
	LookupNone   Status = 1
	LookupChars  Status = 2
	LookupKeySym Status = 3
	LookupBoth   Status = 4
)

// Keysym is an X11 key symbol.
type Keysym uint32

// Event is the subset of an XEvent the translator reads.
type Event struct {
	Type    int
	X, Y    int
	Button  uint32
	Keycode uint32
	State   uint32

	// Request is set for MappingNotify.
	Request int

	// IC is the input context of the window that received the event, if
	// the window created one.
	IC InputContext
}

// ComposeStatus is the persistent compose state threaded through Latin-1
// lookups.
type ComposeStatus struct {
	ComposePtr   uintptr
	CharsMatched int
}

// Display wraps the Xlib keyboard calls of one display connection.
type Display interface {
	// LookupKeysym returns the keysym at index of the event's keycode.
	LookupKeysym(ev *Event, index int) Keysym

	// LookupString returns the Latin-1 text produced by a key press.
	LookupString(ev *Event, compose *ComposeStatus) []byte

	// RefreshKeyboardMapping reloads the keyboard or modifier mapping.
	RefreshKeyboardMapping(ev *Event)
}

// InputContext wraps Xutf8LookupString for one window's input context.
type InputContext interface {
	LookupUTF8(ev *Event) ([]byte, Status)
}
