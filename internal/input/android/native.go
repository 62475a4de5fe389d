// Package android translates NativeActivity input queue events into
// normalized input events.
//
// The activity glue reads AInputEvent values off the looper and hands them
// to HandleNative as MotionEvent or KeyEvent copies; accelerometer samples
// arrive as SensorEvent. Characters are resolved on key release through a
// UnicodeResolver, which on a device calls KeyEvent.getUnicodeChar over JNI.
package android

// Input event classes.
const (
	EventTypeKey    = 1
	EventTypeMotion = 2
)

// Key actions.
const (
	KeyActionDown     = 0
	KeyActionUp       = 1
	KeyActionMultiple = 2
)

// Motion actions. The pointer index of POINTER_DOWN and POINTER_UP is
// packed into bits 8-15.
const (
	MotionActionMask          = 0xff
	MotionPointerIndexMask    = 0xff00
	MotionPointerIndexShift   = 8
	MotionActionDown          = 0
	MotionActionUp            = 1
	MotionActionMove          = 2
	MotionActionCancel        = 3
	MotionActionOutside       = 4
	MotionActionPointerDown   = 5
	MotionActionPointerUp     = 6
	MotionActionHoverMove     = 7
	MotionActionScroll        = 8
	MotionActionHoverEnter    = 9
	MotionActionHoverExit     = 10
	MotionActionButtonPress   = 11
	MotionActionButtonRelease = 12
)

// Meta state bits.
const (
	MetaShiftOn    = 0x01
	MetaAltOn      = 0x02
	MetaSymOn      = 0x04
	MetaFunctionOn = 0x08
	MetaCtrlOn     = 0x1000
	MetaMetaOn     = 0x10000
	MetaCapsLockOn = 0x100000
	MetaNumLockOn  = 0x200000
)

// Sensor types forwarded as acceleration.
const (
	SensorAccelerometer      = 1
	SensorLinearAcceleration = 10
)

// Pointer is one contact of a motion event.
type Pointer struct {
	ID   int
	X, Y float32
}

// MotionEvent is a copy of an AMotionEvent.
type MotionEvent struct {
	Action    int32
	MetaState int32
	Pointers  []Pointer
}

// ActionMasked returns the action without the pointer index.
func (m *MotionEvent) ActionMasked() int32 {
	return m.Action & MotionActionMask
}

// ActionIndex returns the pointer index of POINTER_DOWN and POINTER_UP.
func (m *MotionEvent) ActionIndex() int {
	return int(m.Action&MotionPointerIndexMask) >> MotionPointerIndexShift
}

// KeyEvent is a copy of an AKeyEvent. The fields mirror the arguments of
// the android.view.KeyEvent constructor so a resolver can rebuild it.
type KeyEvent struct {
	DownTime  int64
	EventTime int64
	Action    int32
	KeyCode   int32
	Repeat    int32
	MetaState int32
	DeviceID  int32
	ScanCode  int32
	Flags     int32
	Source    int32

	// Characters carries the text of an ACTION_MULTIPLE event with
	// KEYCODE_UNKNOWN.
	Characters string
}

// SensorEvent is one ASensorEvent sample.
type SensorEvent struct {
	Type    int32
	X, Y, Z float32
}

// UnicodeResolver maps a key event to the character it produces under the
// current keyboard map. A negative result marks a combining accent, zero
// means no character.
type UnicodeResolver interface {
	UnicodeChar(ev *KeyEvent) rune
}

// UnicodeResolverFunc adapts a function to UnicodeResolver.
type UnicodeResolverFunc func(ev *KeyEvent) rune

// UnicodeChar calls f(ev).
func (f UnicodeResolverFunc) UnicodeChar(ev *KeyEvent) rune { return f(ev) }
