package evdev

import (
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// contactSlot is the protocol B state of one multi-touch slot. The
// tracking id changes at most once per frame.
type contactSlot struct {
	id        int32
	x, y      int
	idChanged bool
	moved     bool
}

// frame collects the changes between two SYN_REPORTs.
type frame struct {
	dx, dy, wheel int
	absX, absY    int
	hasAbsX       bool
	hasAbsY       bool
	multiTouch    bool
	keys          []InputEvent
}

// Translator converts the records of one device. It is push driven: the
// reader hands records to HandleNative in order.
type Translator struct {
	log   *zap.Logger
	keys  *session.Keyboard
	mouse *session.Mouse
	touch *session.Touch

	frame    frame
	dropping bool
	capsLock bool
	x, y     int
	slot     int
	slots    [event.MaxFingers]contactSlot
}

// New creates a translator for one device.
func New(env session.Env) *Translator {
	env = env.Named("evdev")
	t := &Translator{
		log:   env.Logger,
		keys:  session.NewKeyboard(env.Sink, keySlots),
		mouse: session.NewMouse(env.Sink, env.Clock),
		touch: session.NewTouch(env.Sink, env.Clock),
	}
	for i := range t.slots {
		t.slots[i].id = -1
	}
	return t
}

// Name returns "evdev".
func (t *Translator) Name() string { return "evdev" }

// Process is a no-op; device readers push records.
func (t *Translator) Process() {}

// Close releases every held key, button and contact.
func (t *Translator) Close() error {
	t.releaseAll()
	return nil
}

// HandleNative translates an InputEvent or []InputEvent.
func (t *Translator) HandleNative(native any) bool {
	switch ev := native.(type) {
	case InputEvent:
		t.record(ev)
	case []InputEvent:
		for _, e := range ev {
			t.record(e)
		}
	default:
		return false
	}
	return true
}

func (t *Translator) record(ev InputEvent) {
	if ev.Type == EvSyn {
		switch ev.Code {
		case SynReport:
			if t.dropping {
				// Device state is unknown after an overrun.
				t.dropping = false
				t.frame = frame{}
				t.releaseAll()
				return
			}
			t.flush()
		case SynDropped:
			t.log.Debug("event buffer overrun")
			t.dropping = true
		}
		return
	}
	if t.dropping {
		return
	}

	f := &t.frame
	switch ev.Type {
	case EvKey:
		f.keys = append(f.keys, ev)
	case EvRel:
		switch ev.Code {
		case RelX:
			f.dx += int(ev.Value)
		case RelY:
			f.dy += int(ev.Value)
		case RelWheel:
			f.wheel += int(ev.Value)
		}
	case EvAbs:
		t.abs(ev)
	}
}

func (t *Translator) abs(ev InputEvent) {
	f := &t.frame
	switch ev.Code {
	case AbsX:
		f.absX, f.hasAbsX = int(ev.Value), true
	case AbsY:
		f.absY, f.hasAbsY = int(ev.Value), true
	case AbsMTSlot:
		f.multiTouch = true
		t.slot = int(ev.Value)
	case AbsMTTrackingID, AbsMTPositionX, AbsMTPositionY:
		f.multiTouch = true
		if t.slot < 0 || t.slot >= event.MaxFingers {
			return
		}
		s := &t.slots[t.slot]
		switch ev.Code {
		case AbsMTTrackingID:
			s.id, s.idChanged = ev.Value, true
		case AbsMTPositionX:
			s.x, s.moved = int(ev.Value), true
		case AbsMTPositionY:
			s.y, s.moved = int(ev.Value), true
		}
	}
}

func (t *Translator) flush() {
	f := t.frame
	t.frame = frame{}

	// Touch screens repeat the first contact as ABS_X/ABS_Y; only
	// pointer devices without contacts drive the cursor absolutely.
	if (f.hasAbsX || f.hasAbsY) && !f.multiTouch {
		nx, ny := t.x, t.y
		if f.hasAbsX {
			nx = f.absX
		}
		if f.hasAbsY {
			ny = f.absY
		}
		f.dx, f.dy = nx-t.x, ny-t.y
	}
	if f.dx != 0 || f.dy != 0 || f.wheel != 0 {
		t.x += f.dx
		t.y += f.dy
		t.mouse.MoveDelta(t.x, t.y, float64(f.dx), float64(f.dy), float64(f.wheel))
	}

	for _, ev := range f.keys {
		t.key(ev)
	}

	for i := range t.slots {
		s := &t.slots[i]
		active := t.touch.Active(i)
		switch {
		case s.idChanged:
			if active {
				t.touch.End(i, s.x, s.y)
			}
			if s.id >= 0 {
				t.touch.Begin(i, s.x, s.y)
			}
		case s.moved && active:
			t.touch.Move(i, s.x, s.y)
		}
		s.idChanged, s.moved = false, false
	}
}

func (t *Translator) key(ev InputEvent) {
	if slot, ok := buttonCodes[ev.Code]; ok {
		b := mouse.FromSlot(slot)
		switch ev.Value {
		case KeyPressed:
			t.mouse.Press(b, t.x, t.y)
		case KeyReleased:
			t.mouse.Release(b, t.x, t.y)
		}
		return
	}
	if ev.Code == BtnTouch || ev.Value == KeyRepeated {
		return
	}

	k := CodeTable().Lookup(uint32(ev.Code))
	stroke := session.Stroke{Key: k, Scancode: uint32(ev.Code)}
	if t.capsLock {
		stroke.Flags = key.ModCapsLock
	}
	switch ev.Value {
	case KeyPressed:
		if !t.keys.Press(int(ev.Code), stroke) {
			return
		}
		if k == key.KeyCapsLock {
			t.capsLock = !t.capsLock
		}
		if r := t.text(k); r != 0 {
			t.keys.Char(r, uint32(ev.Code))
		}
	case KeyReleased:
		t.keys.Release(int(ev.Code), stroke)
	}
}

// text returns the US-layout character of a key press given the held
// modifiers. Chords with Ctrl, Alt or Meta type nothing.
func (t *Translator) text(k key.Key) rune {
	mods := t.keys.Modifiers()
	if mods&(key.ModCtrl|key.ModAlt|key.ModMeta) != 0 {
		return 0
	}
	shift := mods.Has(key.ModShift)
	if t.capsLock && k >= key.KeyA && k <= key.KeyZ {
		shift = !shift
	}
	return k.Rune(shift)
}

func (t *Translator) releaseAll() {
	t.keys.ReleaseAll()
	t.mouse.ReleaseAll()
	t.touch.CancelAll()
	for i := range t.slots {
		t.slots[i] = contactSlot{id: -1, x: t.slots[i].x, y: t.slots[i].y}
	}
}
