package terminal

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

var buttonMap = [...]struct {
	tcell  tcell.ButtonMask
	button mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button2, mouse.ButtonRight},
	{tcell.Button3, mouse.ButtonMiddle},
	{tcell.Button4, mouse.Button3},
	{tcell.Button5, mouse.Button4},
	{tcell.Button6, mouse.Button5},
	{tcell.Button7, mouse.Button6},
	{tcell.Button8, mouse.Button7},
}

// Translator converts tcell events. Built with a screen it is poll
// driven: Process drains the screen's pending events. Without one it is
// push driven through HandleNative.
type Translator struct {
	screen  tcell.Screen
	sink    event.Sink
	log     *zap.Logger
	mouse   *session.Mouse
	pasting bool
}

// New creates a translator. screen may be nil.
func New(env session.Env, screen tcell.Screen) *Translator {
	env = env.Named("terminal")
	return &Translator{
		screen: screen,
		sink:   env.Sink,
		log:    env.Logger,
		mouse:  session.NewMouse(env.Sink, env.Clock),
	}
}

// Name returns "terminal".
func (t *Translator) Name() string { return "terminal" }

// Process translates every event already queued on the screen without
// blocking.
func (t *Translator) Process() {
	if t.screen == nil {
		return
	}
	for t.screen.HasPendingEvent() {
		t.HandleNative(t.screen.PollEvent())
	}
}

// Close releases nothing; the screen belongs to the caller.
func (t *Translator) Close() error { return nil }

// HandleNative translates a tcell.Event.
func (t *Translator) HandleNative(native any) bool {
	switch ev := native.(type) {
	case *tcell.EventKey:
		t.keyEvent(ev)
	case *tcell.EventMouse:
		t.mouseEvent(ev)
	case *tcell.EventPaste:
		t.pasting = ev.Start()
	case *tcell.EventFocus:
		if !ev.Focused {
			t.mouse.ReleaseAll()
		}
	default:
		return false
	}
	return true
}

func (t *Translator) keyEvent(ev *tcell.EventKey) {
	id, extra, r := resolve(ev)
	mods := modifiers(ev.Modifiers()) | extra
	if mods.Has(key.ModCtrl) || mods.Has(key.ModAlt) {
		r = 0
	}

	// Pasted text carries no key strokes.
	if t.pasting {
		if r == '\b' || r == 0x7f {
			return
		}
		if r != 0 {
			t.sink.Post(event.NewChar(r, uint32(r)))
		}
		return
	}

	scancode := uint32(ev.Key())
	if ev.Key() == tcell.KeyRune {
		scancode = uint32(ev.Rune())
	}
	if id == key.KeyUnknown {
		t.log.Debug("unmapped key", zap.String("name", ev.Name()))
	}
	t.sink.Post(event.NewKey(event.KindKeyDown, id, scancode, mods))
	if r != 0 {
		t.sink.Post(event.NewChar(r, scancode))
	}
	t.sink.Post(event.NewKey(event.KindKeyUp, id, scancode, mods))
}

func (t *Translator) mouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	mask := ev.Buttons()

	var dz float64
	if mask&tcell.WheelUp != 0 {
		dz++
	}
	if mask&tcell.WheelDown != 0 {
		dz--
	}
	t.mouse.Move(x, y, dz)

	held := t.mouse.Buttons()
	for _, b := range buttonMap {
		down := mask&b.tcell != 0
		switch {
		case down && !held.Has(b.button):
			t.mouse.Press(b.button, x, y)
		case !down && held.Has(b.button):
			t.mouse.Release(b.button, x, y)
		}
	}
}
