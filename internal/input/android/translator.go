package android

import (
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/session"
)

// Translator converts activity input events. It is push driven: the
// activity glue calls HandleNative from its input callback and returns the
// result to the looper.
type Translator struct {
	log      *zap.Logger
	sink     event.Sink
	resolver UnicodeResolver
	keys     *session.Keyboard
	touch    *session.Touch
}

// New creates a translator. A nil resolver means DefaultResolver.
func New(env session.Env, resolver UnicodeResolver) *Translator {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	env = env.Named("android")
	return &Translator{
		log:      env.Logger,
		sink:     env.Sink,
		resolver: resolver,
		keys:     session.NewKeyboard(env.Sink, keycodeSlots),
		touch:    session.NewTouch(env.Sink, env.Clock),
	}
}

// Name returns "android".
func (t *Translator) Name() string { return "android" }

// Process is a no-op; the activity looper delivers events.
func (t *Translator) Process() {}

// Close releases nothing.
func (t *Translator) Close() error { return nil }

// HandleNative translates a *MotionEvent, *KeyEvent, SensorEvent or
// []SensorEvent and reports whether it was consumed. Unconsumed key events
// fall through to the system, which handles volume and back navigation.
func (t *Translator) HandleNative(native any) bool {
	switch ev := native.(type) {
	case *MotionEvent:
		return ev != nil && t.motion(ev)
	case *KeyEvent:
		return ev != nil && t.keyEvent(ev)
	case SensorEvent:
		return t.sensor(ev)
	case []SensorEvent:
		consumed := false
		for _, s := range ev {
			if t.sensor(s) {
				consumed = true
			}
		}
		return consumed
	}
	return false
}

func (t *Translator) motion(ev *MotionEvent) bool {
	action := ev.ActionMasked()
	switch action {
	case MotionActionDown, MotionActionUp, MotionActionCancel, MotionActionMove:
		for _, p := range ev.Pointers {
			t.pointer(action, p)
		}
	case MotionActionPointerDown, MotionActionPointerUp:
		i := ev.ActionIndex()
		if i >= len(ev.Pointers) {
			t.log.Debug("pointer index out of range", zap.Int("index", i), zap.Int("pointers", len(ev.Pointers)))
			return true
		}
		t.pointer(action, ev.Pointers[i])
	default:
		t.log.Debug("ignored motion action", zap.Int32("action", action))
	}
	return true
}

func (t *Translator) pointer(action int32, p Pointer) {
	if p.ID < 0 || p.ID >= event.MaxFingers {
		return
	}
	x, y := int(p.X), int(p.Y)
	switch action {
	case MotionActionDown, MotionActionPointerDown:
		t.touch.Begin(p.ID, x, y)
	case MotionActionUp, MotionActionPointerUp:
		t.touch.End(p.ID, x, y)
	case MotionActionCancel:
		t.touch.Cancel(p.ID, x, y)
	case MotionActionMove:
		t.touch.Move(p.ID, x, y)
	}
}

func (t *Translator) keyEvent(ev *KeyEvent) bool {
	if ev.Action == KeyActionMultiple && ev.KeyCode == KeycodeUnknown {
		for _, r := range ev.Characters {
			t.keys.Char(r, 0)
		}
		return ev.Characters != ""
	}

	// Unmapped codes are posted as KeyUnknown but left to the system.
	k := LookupKey(ev.KeyCode)
	mapped := k != key.KeyUnknown
	if !mapped {
		t.log.Debug("unmapped key code", zap.Int32("keycode", ev.KeyCode))
	}
	slot := int(ev.KeyCode)
	stroke := session.Stroke{Key: k, Scancode: uint32(ev.KeyCode), Flags: metaModifiers(ev.MetaState)}
	switch ev.Action {
	case KeyActionDown:
		t.keys.Press(slot, stroke)
	case KeyActionUp:
		t.keys.Release(slot, stroke)
		if c := t.resolver.UnicodeChar(ev); c > 0 {
			t.keys.Char(c, uint32(ev.KeyCode))
		}
	}
	return mapped
}

func (t *Translator) sensor(ev SensorEvent) bool {
	if ev.Type != SensorAccelerometer && ev.Type != SensorLinearAcceleration {
		return false
	}
	return t.sink.Post(event.NewAcceleration(float64(ev.X), float64(ev.Y), float64(ev.Z)))
}

func metaModifiers(meta int32) key.Modifier {
	var m key.Modifier
	if meta&MetaShiftOn != 0 {
		m |= key.ModShift
	}
	if meta&MetaCtrlOn != 0 {
		m |= key.ModCtrl
	}
	if meta&MetaAltOn != 0 {
		m |= key.ModAlt
	}
	if meta&MetaMetaOn != 0 {
		m |= key.ModMeta
	}
	if meta&MetaCapsLockOn != 0 {
		m |= key.ModCapsLock
	}
	if meta&MetaNumLockOn != 0 {
		m |= key.ModNumLock
	}
	return m
}
