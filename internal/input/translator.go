package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keystream/internal/input/session"
	"github.com/dshills/keystream/internal/input/terminal"
)

// Translator converts one platform's native input into events.
type Translator interface {
	// Name identifies the platform.
	Name() string

	// Process samples polled device state. Push platforms do nothing.
	Process()

	// HandleNative translates one native event and reports whether it
	// was consumed.
	HandleNative(native any) bool

	// Close releases the translator's native resources.
	Close() error
}

// Factory builds a translator posting through env. native is the value
// given to WithNative, or nil.
type Factory func(env session.Env, native any) (Translator, error)

// Terminal builds a tcell translator. native may be a tcell.Screen for
// Process to poll; without one the translator only handles events
// passed to HandleNativeWindowEvent.
func Terminal(env session.Env, native any) (Translator, error) {
	screen, _ := native.(tcell.Screen)
	return terminal.New(env, screen), nil
}

// Synthetic builds a translator that consumes nothing. Modules built with
// it receive input only through the Post functions.
func Synthetic(session.Env, any) (Translator, error) {
	return synthetic{}, nil
}

type synthetic struct{}

func (synthetic) Name() string          { return "synthetic" }
func (synthetic) Process()              {}
func (synthetic) HandleNative(any) bool { return false }
func (synthetic) Close() error          { return nil }

// WindowEventKind tags the payload of a WindowEvent.
type WindowEventKind uint8

const (
	// WindowEventOther is any window message that carries no input.
	WindowEventOther WindowEventKind = iota
	// WindowEventNative carries a raw native input event.
	WindowEventNative
)

// WindowEvent is one message from the window layer.
type WindowEvent struct {
	Kind    WindowEventKind
	Payload any
}

// NativeEvent wraps a raw native input event.
func NativeEvent(payload any) WindowEvent {
	return WindowEvent{Kind: WindowEventNative, Payload: payload}
}
