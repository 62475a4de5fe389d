package android

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/session"
)

var ignoreStamp = cmpopts.IgnoreFields(event.Event{}, "Seq", "Time")

func newTranslator(t *testing.T, resolver UnicodeResolver) (*Translator, *event.Stream, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	stream := event.NewStream(64)
	tr := New(session.Env{Sink: stream, Clock: mock, Logger: zaptest.NewLogger(t)}, resolver)
	return tr, stream, mock
}

func touchEvent(kind event.Kind, x, y int, dx, dy, v float64, finger, fingers uint8) event.Event {
	return event.NewTouch(kind, event.TouchPayload{
		X: x, Y: y, DX: dx, DY: dy, Velocity: v, Finger: finger, Fingers: fingers,
	})
}

func TestKeycodeTable(t *testing.T) {
	tests := []struct {
		code int32
		want key.Key
	}{
		{KeycodeA, key.KeyA},
		{KeycodeZ, key.KeyZ},
		{Keycode0, key.Key0},
		{Keycode9, key.Key9},
		{KeycodeAltLeft, key.KeyLAlt},
		{KeycodeAltRight, key.KeyRAlt},
		{KeycodeShiftLeft, key.KeyLShift},
		{KeycodeShiftRight, key.KeyRShift},
		{KeycodeEnter, key.KeyEnter},
		{KeycodeDel, key.KeyBackspace},
		{KeycodeApostrophe, key.KeyApostrophe},
		{KeycodeEscape, key.KeyEscape},
		{KeycodeFunction, key.KeyFn},
		{KeycodeF1, key.KeyF1},
		{KeycodeF12, key.KeyF12},
		{KeycodeNumpad0, key.KeyNP0},
		{KeycodeNumpadEquals, key.KeyNPEqual},
		{KeycodeUnknown, key.KeyUnknown},
		{100, key.KeyUnknown},
		{-1, key.KeyUnknown},
	}

	for _, tt := range tests {
		if got := LookupKey(tt.code); got != tt.want {
			t.Errorf("LookupKey(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestKeyDownUpWithChar(t *testing.T) {
	var asked []*KeyEvent
	resolver := UnicodeResolverFunc(func(ev *KeyEvent) rune {
		asked = append(asked, ev)
		return 'a'
	})
	tr, stream, _ := newTranslator(t, resolver)

	down := &KeyEvent{Action: KeyActionDown, KeyCode: KeycodeA}
	up := &KeyEvent{Action: KeyActionUp, KeyCode: KeycodeA}
	if !tr.HandleNative(down) || !tr.HandleNative(up) {
		t.Fatal("HandleNative() = false for a mapped key")
	}

	want := []event.Event{
		event.NewKey(event.KindKeyDown, key.KeyA, KeycodeA, key.ModNone),
		event.NewKey(event.KindKeyUp, key.KeyA, KeycodeA, key.ModNone),
		event.NewChar('a', KeycodeA),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if len(asked) != 1 || asked[0] != up {
		t.Errorf("resolver asked %d times, want once for the release", len(asked))
	}
}

func TestKeyRepeatSwallowed(t *testing.T) {
	tr, stream, _ := newTranslator(t, USResolver)

	tr.HandleNative(&KeyEvent{Action: KeyActionDown, KeyCode: KeycodeA + 1})
	tr.HandleNative(&KeyEvent{Action: KeyActionDown, KeyCode: KeycodeA + 1, Repeat: 1})
	tr.HandleNative(&KeyEvent{Action: KeyActionUp, KeyCode: KeycodeA + 1, MetaState: MetaShiftOn})

	got := stream.Drain(nil)
	var kinds []event.Kind
	for _, e := range got {
		kinds = append(kinds, e.Kind)
	}
	want := []event.Kind{event.KindKeyDown, event.KindKeyUp, event.KindChar}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if c, _ := got[2].Char(); c.Rune != 'B' {
		t.Errorf("Char = %q, want 'B'", c.Rune)
	}
	if k, _ := got[1].Key(); !k.Flags.Has(key.ModShift) {
		t.Errorf("KeyUp flags = %v, want Shift", k.Flags)
	}
}

func TestCombiningAccentProducesNoChar(t *testing.T) {
	resolver := UnicodeResolverFunc(func(ev *KeyEvent) rune { return -0x7fffff4c })
	tr, stream, _ := newTranslator(t, resolver)

	tr.HandleNative(&KeyEvent{Action: KeyActionDown, KeyCode: KeycodeGrave})
	tr.HandleNative(&KeyEvent{Action: KeyActionUp, KeyCode: KeycodeGrave})

	for _, e := range stream.Drain(nil) {
		if e.Kind == event.KindChar {
			t.Errorf("unexpected %v for a combining accent", e)
		}
	}
}

func TestUnmappedKeyPostsUnknown(t *testing.T) {
	tests := []int32{KeycodeUnknown, 100, 200}

	for _, code := range tests {
		tr, stream, _ := newTranslator(t, nil)

		if tr.HandleNative(&KeyEvent{Action: KeyActionDown, KeyCode: code}) {
			t.Errorf("HandleNative(keycode %d down) = true, want false", code)
		}
		tr.HandleNative(&KeyEvent{Action: KeyActionUp, KeyCode: code})

		want := []event.Event{
			event.NewKey(event.KindKeyDown, key.KeyUnknown, uint32(code), key.ModNone),
			event.NewKey(event.KindKeyUp, key.KeyUnknown, uint32(code), key.ModNone),
		}
		if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
			t.Errorf("keycode %d events mismatch (-want +got):\n%s", code, diff)
		}
	}
}

func TestKeyMultipleCharacters(t *testing.T) {
	tr, stream, _ := newTranslator(t, USResolver)

	if !tr.HandleNative(&KeyEvent{Action: KeyActionMultiple, KeyCode: KeycodeUnknown, Characters: "hé"}) {
		t.Fatal("HandleNative(ACTION_MULTIPLE) = false")
	}
	want := []event.Event{event.NewChar('h', 0), event.NewChar('é', 0)}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleTouch(t *testing.T) {
	tr, stream, mock := newTranslator(t, nil)

	tr.HandleNative(&MotionEvent{Action: MotionActionDown, Pointers: []Pointer{{ID: 0, X: 10, Y: 10}}})
	mock.Add(time.Second)
	tr.HandleNative(&MotionEvent{Action: MotionActionMove, Pointers: []Pointer{{ID: 0, X: 13, Y: 14}}})
	mock.Add(time.Second)
	tr.HandleNative(&MotionEvent{Action: MotionActionUp, Pointers: []Pointer{{ID: 0, X: 16, Y: 18}}})

	want := []event.Event{
		touchEvent(event.KindTouchBegin, 10, 10, 0, 0, 0, 0, 0x01),
		touchEvent(event.KindTouchMove, 13, 14, 3, 4, 5, 0, 0x01),
		touchEvent(event.KindTouchEnd, 16, 18, 6, 8, 2, 0, 0x00),
		touchEvent(event.KindTouchSwipe, 16, 18, 6, 8, 5, 0, 0x00),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerDownUpUsesActionIndex(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	tr.HandleNative(&MotionEvent{Action: MotionActionDown, Pointers: []Pointer{{ID: 0, X: 1, Y: 1}}})
	tr.HandleNative(&MotionEvent{
		Action:   MotionActionPointerDown | 1<<MotionPointerIndexShift,
		Pointers: []Pointer{{ID: 0, X: 1, Y: 1}, {ID: 3, X: 50, Y: 50}},
	})
	tr.HandleNative(&MotionEvent{
		Action:   MotionActionPointerUp,
		Pointers: []Pointer{{ID: 0, X: 1, Y: 1}, {ID: 3, X: 50, Y: 50}},
	})

	var got []struct {
		Kind    event.Kind
		Finger  uint8
		Fingers uint8
	}
	for _, e := range stream.Drain(nil) {
		p, _ := e.Touch()
		got = append(got, struct {
			Kind    event.Kind
			Finger  uint8
			Fingers uint8
		}{e.Kind, p.Finger, p.Fingers})
	}
	if len(got) != 4 {
		t.Fatalf("got %d events, want 4: %v", len(got), got)
	}
	if got[1].Kind != event.KindTouchBegin || got[1].Finger != 3 || got[1].Fingers != 0x09 {
		t.Errorf("second begin = %+v, want finger 3 with mask 0x09", got[1])
	}
	if got[2].Kind != event.KindTouchEnd || got[2].Finger != 0 || got[2].Fingers != 0x08 {
		t.Errorf("pointer up = %+v, want finger 0 end with mask 0x08", got[2])
	}
	if got[3].Kind != event.KindTouchSwipe {
		t.Errorf("last event = %v, want swipe", got[3].Kind)
	}
}

func TestCancelAppliesToAllPointers(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	pointers := []Pointer{{ID: 0, X: 1, Y: 1}, {ID: 1, X: 2, Y: 2}}
	tr.HandleNative(&MotionEvent{Action: MotionActionDown, Pointers: pointers})
	stream.Drain(nil)
	tr.HandleNative(&MotionEvent{Action: MotionActionCancel, Pointers: pointers})

	want := []event.Event{
		touchEvent(event.KindTouchCancel, 1, 1, 0, 0, 0, 0, 0x02),
		touchEvent(event.KindTouchCancel, 2, 2, 0, 0, 0, 1, 0x00),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerIDsAboveSlotsIgnored(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	if !tr.HandleNative(&MotionEvent{Action: MotionActionDown, Pointers: []Pointer{{ID: 8, X: 1, Y: 1}}}) {
		t.Error("HandleNative(motion) = false, want consumed")
	}
	if n := stream.Len(); n != 0 {
		t.Errorf("stream.Len() = %d, want 0", n)
	}
}

func TestSensors(t *testing.T) {
	tr, stream, _ := newTranslator(t, nil)

	if tr.HandleNative(SensorEvent{Type: 4, X: 1}) {
		t.Error("HandleNative(gyroscope) = true, want false")
	}
	tr.HandleNative([]SensorEvent{
		{Type: SensorAccelerometer, X: 0.5, Y: -9.75, Z: 0.25},
		{Type: SensorAccelerometer, X: 1, Y: 2, Z: 3},
	})

	want := []event.Event{
		event.NewAcceleration(0.5, -9.75, 0.25),
		event.NewAcceleration(1, 2, 3),
	}
	if diff := cmp.Diff(want, stream.Drain(nil), ignoreStamp); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleNativeRejectsForeignPayloads(t *testing.T) {
	tr, _, _ := newTranslator(t, nil)
	for _, native := range []any{nil, 42, (*MotionEvent)(nil), (*KeyEvent)(nil)} {
		if tr.HandleNative(native) {
			t.Errorf("HandleNative(%T) = true, want false", native)
		}
	}
}

func TestUSResolver(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want rune
	}{
		{KeyEvent{KeyCode: KeycodeA}, 'a'},
		{KeyEvent{KeyCode: KeycodeA, MetaState: MetaShiftOn}, 'A'},
		{KeyEvent{KeyCode: KeycodeA, MetaState: MetaCapsLockOn}, 'A'},
		{KeyEvent{KeyCode: KeycodeA, MetaState: MetaCtrlOn}, 0},
		{KeyEvent{KeyCode: Keycode0 + 1, MetaState: MetaShiftOn}, '!'},
		{KeyEvent{KeyCode: KeycodeEnter}, '\n'},
		{KeyEvent{KeyCode: KeycodeApostrophe}, '\''},
		{KeyEvent{KeyCode: KeycodeDpadUp}, 0},
	}

	for _, tt := range tests {
		if got := USResolver.UnicodeChar(&tt.ev); got != tt.want {
			t.Errorf("UnicodeChar(%d, meta %#x) = %q, want %q", tt.ev.KeyCode, tt.ev.MetaState, got, tt.want)
		}
	}
}
