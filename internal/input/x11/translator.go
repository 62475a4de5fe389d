package x11

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// keycodes are 8-255 on every X server.
const keycodeSlots = 256

// Translator converts X11 events. It is push driven: the window layer calls
// HandleNative for every event it receives.
type Translator struct {
	display Display
	log     *zap.Logger
	mouse   *session.Mouse
	keys    *session.Keyboard
	latin1  *encoding.Decoder
	compose ComposeStatus
	located bool
}

// New creates a translator reading keyboard state through display.
func New(env session.Env, display Display) (*Translator, error) {
	if display == nil {
		return nil, ErrNoDisplay
	}
	env = env.Named("x11")
	return &Translator{
		display: display,
		log:     env.Logger,
		mouse:   session.NewMouse(env.Sink, env.Clock),
		keys:    session.NewKeyboard(env.Sink, keycodeSlots),
		latin1:  charmap.ISO8859_1.NewDecoder(),
	}, nil
}

// Name returns "x11".
func (t *Translator) Name() string { return "x11" }

// Process is a no-op; X11 delivers events through HandleNative.
func (t *Translator) Process() {}

// Close releases nothing.
func (t *Translator) Close() error { return nil }

// HandleNative translates an *Event. It returns false for other payloads
// and for event types the translator ignores.
func (t *Translator) HandleNative(native any) bool {
	ev, ok := native.(*Event)
	if !ok || ev == nil {
		return false
	}

	switch ev.Type {
	case MotionNotify:
		t.motion(ev)
	case ButtonPress, ButtonRelease:
		t.button(ev)
	case KeyPress, KeyRelease:
		t.keyEvent(ev)
	case MappingNotify:
		if ev.Request == MappingModifier || ev.Request == MappingKeyboard {
			t.display.RefreshKeyboardMapping(ev)
		}
	case FocusOut:
		t.mouse.ReleaseAll()
		t.keys.ReleaseAll()
	default:
		t.log.Debug("ignored event", zap.Int("type", ev.Type))
		return false
	}
	return true
}

func (t *Translator) motion(ev *Event) {
	if !t.located {
		t.mouse.Warp(ev.X, ev.Y)
		t.located = true
	}
	t.mouse.Move(ev.X, ev.Y, 0)
}

func (t *Translator) button(ev *Event) {
	t.located = true
	press := ev.Type == ButtonPress

	var b mouse.Button
	switch ev.Button {
	case 1:
		b = mouse.ButtonLeft
	case 2:
		b = mouse.ButtonMiddle
	case 3:
		b = mouse.ButtonRight
	case 4, 5:
		// Wheel notches arrive as press/release pairs; only the press moves.
		if press {
			dz := 1.0
			if ev.Button == 5 {
				dz = -1
			}
			t.mouse.Move(ev.X, ev.Y, dz)
		}
		return
	case 8:
		b = mouse.Button3
	case 9:
		b = mouse.Button4
	default:
		t.log.Debug("ignored button", zap.Uint32("button", ev.Button))
		t.mouse.Warp(ev.X, ev.Y)
		return
	}

	if press {
		t.mouse.Press(b, ev.X, ev.Y)
	} else {
		t.mouse.Release(b, ev.X, ev.Y)
	}
}

func (t *Translator) keyEvent(ev *Event) {
	stroke := session.Stroke{
		Key:      LookupKey(t.display.LookupKeysym(ev, 0)),
		Scancode: ev.Keycode,
		Flags:    stateFlags(ev.State),
	}
	if ev.Type == KeyRelease {
		t.keys.Release(int(ev.Keycode), stroke)
		return
	}

	for _, r := range t.text(ev) {
		t.keys.Char(r, ev.Keycode)
	}
	if !t.keys.Press(int(ev.Keycode), stroke) {
		t.log.Debug("repeat or out of range keycode", zap.Uint32("keycode", ev.Keycode))
	}
}

// text returns the characters produced by a key press, through the
// window's input method when it has one and Latin-1 lookup otherwise.
func (t *Translator) text(ev *Event) []rune {
	if ev.IC != nil {
		buf, status := ev.IC.LookupUTF8(ev)
		if status != LookupChars && status != LookupBoth {
			return nil
		}
		return decodeUTF8(buf)
	}

	buf := t.display.LookupString(ev, &t.compose)
	if len(buf) == 0 {
		return nil
	}
	utf, err := t.latin1.Bytes(buf)
	if err != nil {
		t.log.Debug("latin-1 decode failed", zap.Error(err))
		return nil
	}
	return decodeUTF8(utf)
}

func decodeUTF8(buf []byte) []rune {
	runes := make([]rune, 0, len(buf))
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		if r != utf8.RuneError || size > 1 {
			runes = append(runes, r)
		}
		buf = buf[size:]
	}
	return runes
}

func stateFlags(state uint32) key.Modifier {
	var m key.Modifier
	if state&ShiftMask != 0 {
		m |= key.ModShift
	}
	if state&LockMask != 0 {
		m |= key.ModCapsLock
	}
	if state&ControlMask != 0 {
		m |= key.ModCtrl
	}
	if state&Mod1Mask != 0 {
		m |= key.ModAlt
	}
	if state&Mod2Mask != 0 {
		m |= key.ModNumLock
	}
	if state&Mod4Mask != 0 {
		m |= key.ModMeta
	}
	return m
}
