package terminal

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

var ignoreStamp = cmpopts.IgnoreFields(event.Event{}, "Seq", "Time")

// queuedScreen serves a fixed list of events.
type queuedScreen struct {
	tcell.Screen
	events []tcell.Event
}

func (s *queuedScreen) HasPendingEvent() bool { return len(s.events) > 0 }

func (s *queuedScreen) PollEvent() tcell.Event {
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func newTranslator(t *testing.T, screen tcell.Screen) (*Translator, *event.Stream, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	stream := event.NewStream(64)
	return New(session.Env{Sink: stream, Clock: mock, Logger: zaptest.NewLogger(t)}, screen), stream, mock
}

func TestKeyRune(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	tr.HandleNative(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	tr.HandleNative(tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone))

	want := []event.Event{
		event.NewKey(event.KindKeyDown, key.KeyA, 'a', key.ModNone),
		event.NewChar('a', 'a'),
		event.NewKey(event.KindKeyUp, key.KeyA, 'a', key.ModNone),
		event.NewKey(event.KindKeyDown, key.KeyA, 'A', key.ModShift),
		event.NewChar('A', 'A'),
		event.NewKey(event.KindKeyUp, key.KeyA, 'A', key.ModShift),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		key  key.Key
		mods key.Modifier
		char rune
	}{
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), key.Key7, key.ModNone, '7'},
		{"punctuation", tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModNone), key.KeyLeftBracket, key.ModNone, '['},
		{"latin-1", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), key.NonASCII(0xe9), key.ModNone, 'é'},
		{"beyond latin-1", tcell.NewEventKey(tcell.KeyRune, 'ж', tcell.ModNone), key.KeyUnknown, key.ModNone, 'ж'},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.KeyReturn, key.ModNone, '\n'},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.KeyTab, key.ModNone, '\t'},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.KeyBackspace, key.ModNone, '\b'},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), key.KeyDelete, key.ModNone, 0x7f},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.KeyEscape, key.ModNone, 0},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.KeyF5, key.ModNone, 0},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.KeyUp, key.ModNone, 0},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), key.KeyC, key.ModCtrl, 0},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.KeyTab, key.ModShift, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, mods, r := resolve(tt.ev)
			if k != tt.key || mods != tt.mods || r != tt.char {
				t.Errorf("resolve() = (%v, %v, %q), want (%v, %v, %q)", k, mods, r, tt.key, tt.mods, tt.char)
			}
		})
	}
}

func TestAltSuppressesText(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	tr.HandleNative(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt))

	got := stream.Drain(nil)
	if len(got) != 2 {
		t.Fatalf("got %d events, want KeyDown and KeyUp", len(got))
	}
	if k, _ := got[0].Key(); k.Key != key.KeyX || !k.Flags.Has(key.ModAlt) {
		t.Errorf("KeyDown = %v %v, want X with Alt", k.Key, k.Flags)
	}
}

func TestPasteEmitsCharsOnly(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	tr.HandleNative(tcell.NewEventPaste(true))
	tr.HandleNative(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	tr.HandleNative(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	tr.HandleNative(tcell.NewEventPaste(false))
	tr.HandleNative(tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone))

	var kinds []event.Kind
	for _, e := range stream.Drain(nil) {
		kinds = append(kinds, e.Kind)
	}
	want := []event.Kind{
		event.KindChar, event.KindChar,
		event.KindKeyDown, event.KindChar, event.KindKeyUp,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestMouse(t *testing.T) {
	tr, stream, mock := newTranslator(t, nil)

	tr.HandleNative(tcell.NewEventMouse(5, 6, tcell.ButtonNone, tcell.ModNone))
	tr.HandleNative(tcell.NewEventMouse(5, 6, tcell.Button1, tcell.ModNone))
	mock.Add(250 * time.Millisecond)
	tr.HandleNative(tcell.NewEventMouse(7, 6, tcell.Button1, tcell.ModNone))
	tr.HandleNative(tcell.NewEventMouse(7, 6, tcell.ButtonNone, tcell.ModNone))
	tr.HandleNative(tcell.NewEventMouse(7, 6, tcell.WheelDown, tcell.ModNone))

	want := []event.Event{
		event.NewMouse(event.KindMouseMove, event.MousePayload{X: 5, Y: 6, DX: 5, DY: 6}),
		event.NewMouse(event.KindMouseDown, event.MousePayload{
			X: 5, Y: 6, Button: mouse.ButtonLeft, Buttons: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseMove, event.MousePayload{
			X: 7, Y: 6, DX: 2, Buttons: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseUp, event.MousePayload{
			X: 7, Y: 6, DX: 2, DZ: 0.25, Button: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseMove, event.MousePayload{X: 7, Y: 6, DZ: -1}),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestButtonMapping(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	tr.HandleNative(tcell.NewEventMouse(0, 0, tcell.Button2|tcell.Button3, tcell.ModNone))

	var pressed []mouse.Button
	for _, e := range stream.Drain(nil) {
		if p, ok := e.Mouse(); ok && e.Kind == event.KindMouseDown {
			pressed = append(pressed, p.Button)
		}
	}
	if diff := cmp.Diff([]mouse.Button{mouse.ButtonRight, mouse.ButtonMiddle}, pressed); diff != "" {
		t.Errorf("pressed mismatch (-want +got):\n%s", diff)
	}
}

func TestFocusLostReleasesButtons(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	tr.HandleNative(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	stream.Drain(nil)
	tr.HandleNative(tcell.NewEventFocus(false))

	got := stream.Drain(nil)
	if len(got) != 1 || got[0].Kind != event.KindMouseUp {
		t.Errorf("focus loss events = %v, want one MouseUp", got)
	}
}

func TestProcessDrainsScreen(t *testing.T) {
	screen := &queuedScreen{events: []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventResize(80, 24),
	}}
	tr, stream, _ := newTranslator(t, screen)

	tr.Process()

	if len(screen.events) != 0 {
		t.Errorf("%d events left on the screen, want 0", len(screen.events))
	}
	if n := stream.Len(); n != 3 {
		t.Errorf("stream.Len() = %d, want 3", n)
	}
}

func TestHandleNativeRejectsForeignPayloads(t *testing.T) {
	tr, _, _ := newTranslator(t, nil)
	if tr.HandleNative(tcell.NewEventResize(1, 1)) {
		t.Error("HandleNative(resize) = true, want false")
	}
	if tr.HandleNative("x") {
		t.Error("HandleNative(string) = true, want false")
	}
}
