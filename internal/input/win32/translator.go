package win32

import (
	"unicode/utf16"

	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// Keyboard slots are make codes, with 0x100 added for E0-prefixed keys.
const keySlots = 0x200

var buttonFlags = [5]struct {
	down, up uint16
	button   mouse.Button
}{
	{RI_MOUSE_BUTTON_1_DOWN, RI_MOUSE_BUTTON_1_UP, mouse.ButtonLeft},
	{RI_MOUSE_BUTTON_2_DOWN, RI_MOUSE_BUTTON_2_UP, mouse.ButtonRight},
	{RI_MOUSE_BUTTON_3_DOWN, RI_MOUSE_BUTTON_3_UP, mouse.ButtonMiddle},
	{RI_MOUSE_BUTTON_4_DOWN, RI_MOUSE_BUTTON_4_UP, mouse.Button3},
	{RI_MOUSE_BUTTON_5_DOWN, RI_MOUSE_BUTTON_5_UP, mouse.Button4},
}

// Translator converts window messages. It is push driven: the window
// procedure calls HandleNative for every message.
type Translator struct {
	cursor Cursor
	log    *zap.Logger
	mouse  *session.Mouse
	keys   *session.Keyboard

	// unichar is set once the window has been probed for WM_UNICHAR, after
	// which WM_CHAR is ignored.
	unichar bool

	// surrogate holds a pending UTF-16 high surrogate from WM_CHAR.
	surrogate rune
}

// New creates a translator. cursor may be nil, in which case mouse
// positions are accumulated from raw deltas.
func New(env session.Env, cursor Cursor) *Translator {
	env = env.Named("win32")
	t := &Translator{
		cursor: cursor,
		log:    env.Logger,
		mouse:  session.NewMouse(env.Sink, env.Clock),
		keys:   session.NewKeyboard(env.Sink, keySlots),
	}
	if cursor != nil {
		if x, y, ok := cursor.ClientPosition(0); ok {
			t.mouse.Warp(x, y)
		}
	}
	return t
}

// Name returns "win32".
func (t *Translator) Name() string { return "win32" }

// Process is a no-op; Windows delivers input through the window procedure.
func (t *Translator) Process() {}

// Close releases nothing.
func (t *Translator) Close() error { return nil }

// HandleNative translates a *Message and reports whether it was consumed.
// For the UNICODE_NOCHAR probe the window procedure must return TRUE.
func (t *Translator) HandleNative(native any) bool {
	msg, ok := native.(*Message)
	if !ok || msg == nil {
		return false
	}

	switch msg.Msg {
	case WM_KILLFOCUS:
		t.mouse.ReleaseAll()
		t.keys.ReleaseAll()
	case WM_INPUT:
		if msg.Raw == nil {
			t.log.Debug("WM_INPUT without raw input data")
			return false
		}
		switch msg.Raw.Type {
		case RIM_TYPEKEYBOARD:
			t.rawKeyboard(&msg.Raw.Keyboard)
		case RIM_TYPEMOUSE:
			t.rawMouse(msg, &msg.Raw.Mouse)
		default:
			return false
		}
	case WM_CHAR:
		if t.unichar {
			return false
		}
		t.char(msg)
	case WM_UNICHAR:
		if msg.WParam == UNICODE_NOCHAR {
			t.unichar = true
			return true
		}
		t.unichar = true
		t.keys.Char(rune(msg.WParam), scancode(msg.LParam))
	case WM_KEYDOWN:
		if msg.WParam != VK_DELETE {
			return false
		}
		t.keys.Char(0x7f, scancode(msg.LParam))
	default:
		return false
	}
	return true
}

func (t *Translator) rawKeyboard(kb *RawKeyboard) {
	slot := int(kb.MakeCode)
	var flags key.Modifier
	if kb.Flags&RI_KEY_E0 != 0 {
		slot |= 0x100
		flags |= key.ModExtended
	}
	stroke := session.Stroke{
		Key:      Translate(kb.MakeCode, kb.VKey, kb.Flags),
		Scancode: uint32(kb.MakeCode),
		Flags:    flags,
	}
	if kb.Flags&RI_KEY_BREAK != 0 {
		t.keys.Release(slot, stroke)
	} else {
		t.keys.Press(slot, stroke)
	}
}

func (t *Translator) rawMouse(msg *Message, raw *RawMouse) {
	lastX, lastY := t.mouse.Position()
	x, y := lastX+int(raw.LastX), lastY+int(raw.LastY)
	if t.cursor != nil {
		if cx, cy, ok := t.cursor.ClientPosition(msg.HWND); ok {
			x, y = cx, cy
		}
	}

	for _, f := range buttonFlags {
		if raw.ButtonFlags&f.down != 0 {
			t.mouse.Press(f.button, x, y)
		}
		if raw.ButtonFlags&f.up != 0 {
			t.mouse.Release(f.button, x, y)
		}
	}

	dx, dy := float64(x-lastX), float64(y-lastY)
	var dz float64
	if raw.ButtonFlags&RI_MOUSE_WHEEL != 0 {
		dz = float64(int16(raw.ButtonData)) / WHEEL_DELTA
	}
	if msg.Resizing {
		dx, dy = 0, 0
	}
	t.mouse.MoveDelta(x, y, dx, dy, dz)
}

func (t *Translator) char(msg *Message) {
	r := rune(msg.WParam)
	sc := scancode(msg.LParam)
	switch {
	case r > 0xffff:
		t.log.Debug("WM_CHAR outside the BMP", zap.Uint64("wparam", uint64(msg.WParam)))
		return
	case utf16.IsSurrogate(r) && r < 0xdc00:
		t.surrogate = r
		return
	case utf16.IsSurrogate(r):
		if t.surrogate == 0 {
			return
		}
		r = utf16.DecodeRune(t.surrogate, r)
		t.surrogate = 0
	case r == '\r':
		r = '\n'
	}
	t.surrogate = 0
	t.keys.Char(r, sc)
}

// scancode extracts the scan code bits of a key message lParam.
func scancode(lparam uintptr) uint32 {
	return uint32(lparam>>16) & 0xff
}
