package macos

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

var ignoreStamp = cmpopts.IgnoreFields(event.Event{}, "Seq", "Time")

// fakeLayout maps keycodes to unshifted and shifted characters. Keycodes
// in deadKeys start a composition completed by the next key.
type fakeLayout struct {
	id       string
	chars    map[uint16][2]rune
	deadKeys map[uint16]rune
	compose  map[[2]rune]rune
}

func (l *fakeLayout) ID() string { return l.id }

func (l *fakeLayout) Translate(code uint16, mods uint32, dead *uint32) []rune {
	if accent, ok := l.deadKeys[code]; ok {
		if *dead != 0 {
			*dead = 0
			return []rune{accent}
		}
		*dead = uint32(accent)
		return nil
	}
	c, ok := l.chars[code]
	if !ok {
		return nil
	}
	r := c[0]
	if mods&ucShift != 0 {
		r = c[1]
	}
	if *dead != 0 {
		accent := rune(*dead)
		*dead = 0
		if composed, ok := l.compose[[2]rune{accent, r}]; ok {
			return []rune{composed}
		}
		return []rune{accent, r}
	}
	return []rune{r}
}

func usLayout() *fakeLayout {
	return &fakeLayout{
		id: "com.apple.keylayout.US",
		chars: map[uint16][2]rune{
			mkA:      {'a', 'A'},
			mk1:      {'1', '!'},
			mkReturn: {'\r', '\r'},
			mkKP5:    {'5', '5'},
		},
	}
}

func swedishLayout() *fakeLayout {
	return &fakeLayout{
		id: "com.apple.keylayout.Swedish-Pro",
		chars: map[uint16][2]rune{
			mkA:         {'a', 'A'},
			mkE:         {'e', 'E'},
			mkSemicolon: {'ö', 'Ö'},
			mkQuote:     {'ä', 'Ä'},
		},
		deadKeys: map[uint16]rune{mkEquals: '´'},
		compose:  map[[2]rune]rune{{'´', 'e'}: 'é'},
	}
}

type fakeSystem struct {
	layout  Layout
	keys    map[uint16]bool
	buttons map[int]bool
	x, y    float64
	flags   uint64
}

func newFakeSystem(layout Layout) *fakeSystem {
	return &fakeSystem{layout: layout, keys: map[uint16]bool{}, buttons: map[int]bool{}}
}

func (s *fakeSystem) Layout() Layout                     { return s.layout }
func (s *fakeSystem) KeyState(code uint16) bool          { return s.keys[code] }
func (s *fakeSystem) ButtonState(button int) bool        { return s.buttons[button] }
func (s *fakeSystem) CursorLocation() (float64, float64) { return s.x, s.y }
func (s *fakeSystem) Flags() uint64                      { return s.flags }

func newTranslator(t *testing.T, sys System, runner Runner) (*Translator, *event.Stream, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	stream := event.NewStream(64)
	tr, err := New(session.Env{Sink: stream, Clock: mock, Logger: zaptest.NewLogger(t)}, sys, runner)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr, stream, mock
}

func TestNewRequiresSystem(t *testing.T) {
	if _, err := New(session.Env{}, nil, nil); !errors.Is(err, ErrNoSystem) {
		t.Errorf("New(nil) error = %v, want ErrNoSystem", err)
	}
}

func TestBuildTable(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		code   uint32
		want   key.Key
	}{
		{"us default letter", nil, mkQ, key.KeyQ},
		{"us default digit", nil, mk1, key.Key1},
		{"us default modifier", nil, mkCommand, key.KeyLMeta},
		{"layout letter", usLayout(), mkA, key.KeyA},
		{"keypad reinserted", usLayout(), mkKP5, key.KeyNP5},
		{"control char keeps default", usLayout(), mkReturn, key.KeyReturn},
		{"non-ascii", swedishLayout(), mkSemicolon, key.NonASCII(0xf6)},
		{"dead key", swedishLayout(), mkEquals, key.NonASCII(0xb4)},
		{"untranslated keeps default", swedishLayout(), mkZ, key.KeyZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildTable(tt.layout).Lookup(tt.code); got != tt.want {
				t.Errorf("Lookup(%#x) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestProcessKeyDiff(t *testing.T) {
	sys := newFakeSystem(usLayout())
	tr, stream, _ := newTranslator(t, sys, nil)

	sys.keys[mkA] = true
	tr.Process()
	tr.Process()
	sys.keys[mkA] = false
	tr.Process()

	want := []event.Event{
		event.NewKey(event.KindKeyDown, key.KeyA, mkA, key.ModNone),
		event.NewChar('a', mkA),
		event.NewKey(event.KindKeyUp, key.KeyA, mkA, key.ModNone),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessShiftedChar(t *testing.T) {
	sys := newFakeSystem(usLayout())
	tr, stream, _ := newTranslator(t, sys, nil)

	sys.flags = FlagShift
	sys.keys[mkShift] = true
	sys.keys[mkA] = true
	tr.Process()

	var chars []rune
	for _, e := range stream.Drain(nil) {
		if c, ok := e.Char(); ok {
			chars = append(chars, c.Rune)
		}
		if k, ok := e.Key(); ok && k.Key == key.KeyA && !k.Flags.Has(key.ModShift) {
			t.Errorf("KeyDown A flags = %v, want Shift", k.Flags)
		}
	}
	if diff := cmp.Diff([]rune{'A'}, chars); diff != "" {
		t.Errorf("chars mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessDeadKeyComposition(t *testing.T) {
	sys := newFakeSystem(swedishLayout())
	tr, stream, _ := newTranslator(t, sys, nil)

	sys.keys[mkEquals] = true
	tr.Process()
	sys.keys[mkEquals] = false
	sys.keys[mkE] = true
	tr.Process()

	var chars []rune
	for _, e := range stream.Drain(nil) {
		if c, ok := e.Char(); ok {
			chars = append(chars, c.Rune)
		}
	}
	if diff := cmp.Diff([]rune{'é'}, chars); diff != "" {
		t.Errorf("chars mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessCommandSuppressesText(t *testing.T) {
	sys := newFakeSystem(usLayout())
	tr, stream, _ := newTranslator(t, sys, nil)

	sys.flags = FlagCommand
	sys.keys[mkA] = true
	tr.Process()

	for _, e := range stream.Drain(nil) {
		if e.Kind == event.KindChar {
			t.Errorf("unexpected %v with Command held", e)
		}
	}
}

func TestProcessLayoutSwitch(t *testing.T) {
	sys := newFakeSystem(usLayout())
	tr, stream, _ := newTranslator(t, sys, nil)

	if got := tr.Table().Lookup(mkQuote); got != key.KeyQuote {
		t.Fatalf("US Lookup(quote) = %v, want Quote", got)
	}

	sys.layout = swedishLayout()
	sys.keys[mkQuote] = true
	tr.Process()

	got := stream.Drain(nil)
	if len(got) == 0 {
		t.Fatal("no events after layout switch")
	}
	if k, _ := got[0].Key(); k.Key != key.NonASCII(0xe4) {
		t.Errorf("KeyDown = %v, want NonASCII(0xe4)", k.Key)
	}
}

func TestProcessMouse(t *testing.T) {
	sys := newFakeSystem(nil)
	sys.x, sys.y = 100, 200
	tr, stream, mock := newTranslator(t, sys, nil)

	sys.buttons[ButtonLeft] = true
	tr.Process()
	sys.x, sys.y = 110, 190
	mock.Add(500 * time.Millisecond)
	tr.Process()
	sys.buttons[ButtonLeft] = false
	sys.buttons[ButtonCenter] = true
	tr.Process()

	want := []event.Event{
		event.NewMouse(event.KindMouseDown, event.MousePayload{
			X: 100, Y: 200, Button: mouse.ButtonLeft, Buttons: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseMove, event.MousePayload{
			X: 110, Y: 190, DX: 10, DY: -10, Buttons: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseUp, event.MousePayload{
			X: 110, Y: 190, DX: 10, DY: -10, DZ: 0.5, Button: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseDown, event.MousePayload{
			X: 110, Y: 190, Button: mouse.ButtonMiddle, Buttons: mouse.ButtonMiddle,
		}),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessRunsOnRunner(t *testing.T) {
	sys := newFakeSystem(nil)
	calls := 0
	runner := RunnerFunc(func(fn func()) {
		calls++
		fn()
	})
	tr, _, _ := newTranslator(t, sys, runner)

	tr.Process()
	tr.Process()
	if calls != 3 {
		t.Errorf("runner calls = %d, want 3 (construction plus two polls)", calls)
	}
}

func TestHandleNativeIgnored(t *testing.T) {
	tr, _, _ := newTranslator(t, newFakeSystem(nil), nil)
	if tr.HandleNative(struct{}{}) {
		t.Error("HandleNative() = true on a polling translator")
	}
}
