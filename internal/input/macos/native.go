// Package macos translates polled Quartz keyboard and mouse state into
// normalized input events.
//
// macOS offers no per-window raw input stream without event taps, so the
// translator polls the combined session state once per Process call and
// diffs it against the previous snapshot. Key ids follow the active
// keyboard layout, rebuilt whenever the layout changes.
package macos

// Event source flags, from CGEventTypes.h.
const (
	FlagAlphaShift = 0x00010000
	FlagShift      = 0x00020000
	FlagControl    = 0x00040000
	FlagAlternate  = 0x00080000
	FlagCommand    = 0x00100000
	FlagNumericPad = 0x00200000
)

// Quartz mouse buttons.
const (
	ButtonLeft   = 0
	ButtonRight  = 1
	ButtonCenter = 2
)

// UCKeyTranslate modifier state bits (Carbon modifiers >> 8).
const (
	ucCmd       = 0x01
	ucShift     = 0x02
	ucAlphaLock = 0x04
	ucOption    = 0x08
	ucControl   = 0x10
)

// System reads the combined session input state.
type System interface {
	// Layout returns the active keyboard layout, or nil if it has no
	// Unicode layout data.
	Layout() Layout
	KeyState(keycode uint16) bool
	ButtonState(button int) bool
	CursorLocation() (x, y float64)
	Flags() uint64
}

// Layout is one keyboard layout.
type Layout interface {
	// ID identifies the layout; a change of ID triggers a table rebuild.
	ID() string

	// Translate returns the characters a key press produces. dead carries
	// the dead-key state between calls.
	Translate(keycode uint16, modifiers uint32, dead *uint32) []rune
}

// Runner runs a function on the main thread and waits for it.
type Runner interface {
	Sync(fn func())
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(fn func())

// Sync calls f(fn).
func (f RunnerFunc) Sync(fn func()) { f(fn) }

// Inline runs fn on the calling goroutine. It suits callers that already
// pump input from the main thread.
var Inline Runner = RunnerFunc(func(fn func()) { fn() })
