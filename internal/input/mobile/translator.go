package mobile

import (
	"go.uber.org/zap"
	mkey "golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	mmouse "golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// Translator converts x/mobile events. It is push driven: the app loop
// hands every event from app.App.Events to HandleNative.
type Translator struct {
	log   *zap.Logger
	keys  *session.Keyboard
	mouse *session.Mouse
	touch *session.Touch
	slots map[touch.Sequence]int
}

// New creates a translator.
func New(env session.Env) *Translator {
	env = env.Named("mobile")
	return &Translator{
		log:   env.Logger,
		keys:  session.NewKeyboard(env.Sink, hidSlots),
		mouse: session.NewMouse(env.Sink, env.Clock),
		touch: session.NewTouch(env.Sink, env.Clock),
		slots: make(map[touch.Sequence]int, event.MaxFingers),
	}
}

// Name returns "mobile".
func (t *Translator) Name() string { return "mobile" }

// Process is a no-op; the app loop delivers events.
func (t *Translator) Process() {}

// Close releases nothing.
func (t *Translator) Close() error { return nil }

// HandleNative translates touch, key, mouse and lifecycle events. Paint
// and size events are not input and report false.
func (t *Translator) HandleNative(native any) bool {
	switch ev := native.(type) {
	case touch.Event:
		t.touchEvent(ev)
	case mkey.Event:
		t.keyEvent(ev)
	case mmouse.Event:
		t.mouseEvent(ev)
	case lifecycle.Event:
		if ev.Crosses(lifecycle.StageFocused) != lifecycle.CrossOff {
			return false
		}
		t.keys.ReleaseAll()
		t.mouse.ReleaseAll()
		t.touch.CancelAll()
		clear(t.slots)
	default:
		return false
	}
	return true
}

func (t *Translator) touchEvent(ev touch.Event) {
	x, y := int(ev.X), int(ev.Y)
	switch ev.Type {
	case touch.TypeBegin:
		if old, ok := t.slots[ev.Sequence]; ok {
			t.touch.Cancel(old, x, y)
			delete(t.slots, ev.Sequence)
		}
		slot := t.freeSlot()
		if slot < 0 {
			t.log.Debug("no free finger slot", zap.Int64("sequence", int64(ev.Sequence)))
			return
		}
		t.slots[ev.Sequence] = slot
		t.touch.Begin(slot, x, y)
	case touch.TypeMove:
		if slot, ok := t.slots[ev.Sequence]; ok {
			t.touch.Move(slot, x, y)
		}
	case touch.TypeEnd:
		if slot, ok := t.slots[ev.Sequence]; ok {
			delete(t.slots, ev.Sequence)
			t.touch.End(slot, x, y)
		}
	}
}

func (t *Translator) freeSlot() int {
	for slot := 0; slot < event.MaxFingers; slot++ {
		if !t.touch.Active(slot) {
			return slot
		}
	}
	return -1
}

func (t *Translator) keyEvent(ev mkey.Event) {
	code := uint32(ev.Code)
	mods := modifiers(ev.Modifiers)
	stroke := session.Stroke{Key: CodeTable().Lookup(code), Scancode: code, Flags: mods}
	switch ev.Direction {
	case mkey.DirPress:
		t.keys.Press(int(code), stroke)
	case mkey.DirRelease:
		t.keys.Release(int(code), stroke)
		return
	}
	// Presses and repeats carry text.
	if ev.Rune > 0 && !mods.Has(key.ModCtrl) && !mods.Has(key.ModMeta) {
		r := ev.Rune
		if r == '\r' {
			r = '\n'
		}
		t.keys.Char(r, code)
	}
}

var mouseButtons = map[mmouse.Button]mouse.Button{
	mmouse.ButtonLeft:   mouse.ButtonLeft,
	mmouse.ButtonMiddle: mouse.ButtonMiddle,
	mmouse.ButtonRight:  mouse.ButtonRight,
}

func (t *Translator) mouseEvent(ev mmouse.Event) {
	x, y := int(ev.X), int(ev.Y)
	if ev.Button.IsWheel() {
		switch ev.Button {
		case mmouse.ButtonWheelUp:
			t.mouse.Move(x, y, 1)
		case mmouse.ButtonWheelDown:
			t.mouse.Move(x, y, -1)
		}
		return
	}

	b, ok := mouseButtons[ev.Button]
	switch {
	case ev.Direction == mmouse.DirPress && ok:
		t.mouse.Move(x, y, 0)
		t.mouse.Press(b, x, y)
	case ev.Direction == mmouse.DirRelease && ok:
		t.mouse.Move(x, y, 0)
		t.mouse.Release(b, x, y)
	default:
		t.mouse.Move(x, y, 0)
	}
}
