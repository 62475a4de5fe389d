package macos

import (
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// polledKeys is the number of keycodes diffed per poll.
const polledKeys = 256

var polledButtons = [...]struct {
	quartz int
	button mouse.Button
}{
	{ButtonLeft, mouse.ButtonLeft},
	{ButtonRight, mouse.ButtonRight},
	{ButtonCenter, mouse.ButtonMiddle},
}

// Translator polls the session input state. It is poll driven: the
// application calls Process once per frame.
type Translator struct {
	sys    System
	runner Runner
	log    *zap.Logger
	keys   *session.Keyboard
	mouse  *session.Mouse

	layout   Layout
	layoutID string
	table    *key.Table
	dead     uint32

	x, y float64
}

// New creates a translator reading state from sys. Polls run through
// runner, which must execute on the main thread; nil means Inline.
func New(env session.Env, sys System, runner Runner) (*Translator, error) {
	if sys == nil {
		return nil, ErrNoSystem
	}
	if runner == nil {
		runner = Inline
	}
	env = env.Named("macos")
	t := &Translator{
		sys:    sys,
		runner: runner,
		log:    env.Logger,
		keys:   session.NewKeyboard(env.Sink, polledKeys),
		mouse:  session.NewMouse(env.Sink, env.Clock),
	}
	runner.Sync(func() {
		t.switchLayout(sys.Layout())
		t.x, t.y = sys.CursorLocation()
		t.mouse.Warp(int(t.x), int(t.y))
	})
	return t, nil
}

// Name returns "macos".
func (t *Translator) Name() string { return "macos" }

// Close releases nothing.
func (t *Translator) Close() error { return nil }

// HandleNative ignores window events; all input is polled.
func (t *Translator) HandleNative(native any) bool { return false }

// Table returns the keycode table of the active layout.
func (t *Translator) Table() *key.Table { return t.table }

// Process polls keyboard and mouse state on the main thread and emits the
// differences since the previous poll.
func (t *Translator) Process() {
	t.runner.Sync(t.poll)
}

func (t *Translator) poll() {
	layout := t.sys.Layout()
	if layoutID(layout) != t.layoutID {
		t.switchLayout(layout)
		t.log.Info("keyboard layout switched", zap.String("layout", t.layoutID))
	}

	flags := t.sys.Flags()
	mods := modifiers(flags)
	for code := 0; code < polledKeys; code++ {
		down := t.sys.KeyState(uint16(code))
		if down == t.keys.IsDown(code) {
			continue
		}
		stroke := session.Stroke{Key: t.table.Lookup(uint32(code)), Scancode: uint32(code), Flags: mods}
		t.keys.Set(code, down, stroke)
		if down {
			t.text(uint16(code), flags)
		}
	}

	x, y := t.sys.CursorLocation()
	dx, dy := x-t.x, y-t.y
	t.x, t.y = x, y
	ix, iy := int(x), int(y)

	held := t.mouse.Buttons()
	for _, b := range polledButtons {
		down := t.sys.ButtonState(b.quartz)
		switch {
		case down && !held.Has(b.button):
			t.mouse.Press(b.button, ix, iy)
		case !down && held.Has(b.button):
			t.mouse.Release(b.button, ix, iy)
		}
	}
	t.mouse.MoveDelta(ix, iy, dx, dy, 0)
}

// text emits the characters of a key press, threading dead-key state
// through the layout. Command shortcuts produce no text.
func (t *Translator) text(code uint16, flags uint64) {
	if t.layout == nil || flags&FlagCommand != 0 {
		return
	}
	for _, r := range t.layout.Translate(code, ucModifiers(flags), &t.dead) {
		switch {
		case r == '\r':
			r = '\n'
		case r < 0x20 && r != '\t', r == 0x7f:
			continue
		}
		t.keys.Char(r, uint32(code))
	}
}

func (t *Translator) switchLayout(layout Layout) {
	t.layout = layout
	t.layoutID = layoutID(layout)
	t.table = BuildTable(layout)
	t.dead = 0
}

func layoutID(layout Layout) string {
	if layout == nil {
		return ""
	}
	return layout.ID()
}

func modifiers(flags uint64) key.Modifier {
	var m key.Modifier
	if flags&FlagAlphaShift != 0 {
		m |= key.ModCapsLock
	}
	if flags&FlagShift != 0 {
		m |= key.ModShift
	}
	if flags&FlagControl != 0 {
		m |= key.ModCtrl
	}
	if flags&FlagAlternate != 0 {
		m |= key.ModAlt
	}
	if flags&FlagCommand != 0 {
		m |= key.ModMeta
	}
	if flags&FlagNumericPad != 0 {
		m |= key.ModExtended
	}
	return m
}

func ucModifiers(flags uint64) uint32 {
	var m uint32
	if flags&FlagShift != 0 {
		m |= ucShift
	}
	if flags&FlagAlphaShift != 0 {
		m |= ucAlphaLock
	}
	if flags&FlagAlternate != 0 {
		m |= ucOption
	}
	if flags&FlagControl != 0 {
		m |= ucControl
	}
	if flags&FlagCommand != 0 {
		m |= ucCmd
	}
	return m
}
