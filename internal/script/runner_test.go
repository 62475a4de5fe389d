package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
)

// recorder is a Poster that keeps every accepted record.
type recorder struct {
	events []event.Event
}

func (r *recorder) post(e event.Event) bool {
	if !e.Valid() {
		return false
	}
	r.events = append(r.events, e)
	return true
}

func (r *recorder) PostKey(kind event.Kind, k key.Key, scancode uint32, flags key.Modifier) bool {
	if kind == event.KindChar {
		return r.post(event.NewChar(rune(k), scancode))
	}
	return r.post(event.NewKey(kind, k, scancode, flags))
}

func (r *recorder) PostMouse(kind event.Kind, x, y int, dx, dy, dz float64, button, buttons mouse.Button) bool {
	return r.post(event.NewMouse(kind, event.MousePayload{
		X: x, Y: y, DX: dx, DY: dy, DZ: dz, Button: button, Buttons: buttons,
	}))
}

func (r *recorder) PostTouch(kind event.Kind, x, y int, dx, dy, velocity float64, finger int, fingers uint8) bool {
	if finger < 0 || finger >= event.MaxFingers {
		return false
	}
	return r.post(event.NewTouch(kind, event.TouchPayload{
		X: x, Y: y, DX: dx, DY: dy, Velocity: velocity, Finger: uint8(finger), Fingers: fingers,
	}))
}

func (r *recorder) PostAcceleration(kind event.Kind, x, y, z float64) bool {
	return r.post(event.Event{Kind: kind, Payload: event.AccelerationPayload{X: x, Y: y, Z: z}})
}

// steppingClock advances itself whenever a timer is requested.
type steppingClock struct {
	*clock.Mock
}

func (c steppingClock) After(d time.Duration) <-chan time.Time {
	ch := c.Mock.After(d)
	c.Mock.Add(d)
	return ch
}

func newRunner(t *testing.T) (*Runner, *recorder) {
	t.Helper()
	rec := &recorder{}
	r := New(rec, WithClock(steppingClock{clock.NewMock()}), WithLogger(zaptest.NewLogger(t)))
	t.Cleanup(func() { r.Close() })
	return r, rec
}

func run(t *testing.T, r *Runner, src string) {
	t.Helper()
	if err := r.RunString(context.Background(), t.Name(), src); err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
}

func TestType(t *testing.T) {
	r, rec := newRunner(t)
	run(t, r, `input.type("Hi!")`)

	want := []event.Event{
		event.NewKey(event.KindKeyDown, key.KeyLShift, 0, key.ModShift),
		event.NewKey(event.KindKeyDown, key.KeyH, 0, key.ModShift),
		event.NewChar('H', 0),
		event.NewKey(event.KindKeyUp, key.KeyH, 0, key.ModShift),
		event.NewKey(event.KindKeyUp, key.KeyLShift, 0, key.ModNone),
		event.NewKey(event.KindKeyDown, key.KeyI, 0, key.ModNone),
		event.NewChar('i', 0),
		event.NewKey(event.KindKeyUp, key.KeyI, 0, key.ModNone),
		event.NewKey(event.KindKeyDown, key.KeyLShift, 0, key.ModShift),
		event.NewKey(event.KindKeyDown, key.Key1, 0, key.ModShift),
		event.NewChar('!', 0),
		event.NewKey(event.KindKeyUp, key.Key1, 0, key.ModShift),
		event.NewKey(event.KindKeyUp, key.KeyLShift, 0, key.ModNone),
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeWithoutKeyPostsCharOnly(t *testing.T) {
	r, rec := newRunner(t)
	run(t, r, `input.type("é")`)

	want := []event.Event{event.NewChar('é', 0)}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyPairing(t *testing.T) {
	r, rec := newRunner(t)
	run(t, r, `
		assert(input.key_down("lctrl"))
		assert(input.key_down("c", 46))
		assert(not input.key_down("c", 46), "repeat press must be swallowed")
		assert(input.key_up("c", 46))
		assert(not input.key_up("c", 46))
	`)

	if len(rec.events) != 3 {
		t.Fatalf("got %d events, want 3: %v", len(rec.events), rec.events)
	}
	p, _ := rec.events[1].Key()
	if p.Key != key.KeyC || p.Scancode != 46 || p.Flags != key.ModCtrl {
		t.Errorf("KeyDown = %+v, want C scancode 46 with Ctrl", p)
	}
	if rec.events[2].Kind != event.KindKeyUp {
		t.Errorf("third event = %v, want KeyUp", rec.events[2].Kind)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	last := rec.events[len(rec.events)-1]
	if k, _ := last.Key(); last.Kind != event.KindKeyUp || k.Key != key.KeyLCtrl {
		t.Errorf("Close() posted %v, want KeyUp LCtrl", last)
	}
}

func TestMouseGestures(t *testing.T) {
	r, rec := newRunner(t)
	run(t, r, `
		input.mouse_move(10, 10)
		input.mouse_down("left")
		input.wait(0.5)
		input.mouse_up("left", 12, 10)
		input.mouse_move(12, 10, -1)
	`)

	want := []event.Event{
		event.NewMouse(event.KindMouseMove, event.MousePayload{X: 10, Y: 10, DX: 10, DY: 10}),
		event.NewMouse(event.KindMouseDown, event.MousePayload{
			X: 10, Y: 10, Button: mouse.ButtonLeft, Buttons: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseUp, event.MousePayload{
			X: 12, Y: 10, DX: 2, DZ: 0.5, Button: mouse.ButtonLeft,
		}),
		event.NewMouse(event.KindMouseMove, event.MousePayload{X: 12, Y: 10, DZ: -1}),
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTouchSwipe(t *testing.T) {
	r, rec := newRunner(t)
	run(t, r, `
		input.touch_begin(2, 0, 0)
		input.wait(1)
		input.touch_move(2, 3, 4)
		input.wait(1)
		input.touch_end(2, 6, 8)
	`)

	kinds := make([]event.Kind, len(rec.events))
	for i, e := range rec.events {
		kinds[i] = e.Kind
	}
	wantKinds := []event.Kind{
		event.KindTouchBegin, event.KindTouchMove, event.KindTouchEnd, event.KindTouchSwipe,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	end, _ := rec.events[2].Touch()
	if end.DX != 6 || end.DY != 8 || end.Velocity != 2 || end.Finger != 2 {
		t.Errorf("TouchEnd = %+v, want origin delta (6,8) and duration 2", end)
	}
	swipe, _ := rec.events[3].Touch()
	if swipe.Velocity != 5 || swipe.Finger != 0 {
		t.Errorf("TouchSwipe = %+v, want velocity 5 on finger 0", swipe)
	}
}

func TestRawPosts(t *testing.T) {
	r, rec := newRunner(t)
	run(t, r, `
		assert(input.post_key("KeyDown", "a", 30, "shift"))
		assert(input.post_mouse("MouseDown", 1, 2, 0, 0, 0, "right", "right|left"))
		assert(input.post_touch("TouchBegin", 5, 6, 0, 0, 0, 7, 128))
		assert(input.post_touch("TouchBegin", 5, 6, 0, 0, 0, 8, 0) == false)
		assert(input.post_acceleration("Acceleration", 0, -9.8, 0))
		assert(input.accel(1, 2, 3))
	`)

	want := []event.Event{
		event.NewKey(event.KindKeyDown, key.KeyA, 30, key.ModShift),
		event.NewMouse(event.KindMouseDown, event.MousePayload{
			X: 1, Y: 2, Button: mouse.ButtonRight, Buttons: mouse.ButtonLeft | mouse.ButtonRight,
		}),
		event.NewTouch(event.KindTouchBegin, event.TouchPayload{X: 5, Y: 6, Finger: 7, Fingers: 128}),
		event.NewAcceleration(0, -9.8, 0),
		event.NewAcceleration(1, 2, 3),
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", `input.key_down("nope")`, "unknown key nope"},
		{"unknown button", `input.click("thumb")`, "unknown button thumb"},
		{"unknown kind", `input.post_key("Pressed", "a")`, "unknown event kind Pressed"},
		{"syntax", `input.type(`, "script chunk"},
		{"no os library", `os.exit(1)`, "attempt to index"},
		{"no dofile", `dofile("/etc/passwd")`, "attempt to call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRunner(t)
			err := r.RunString(context.Background(), "chunk", tt.src)
			var se *Error
			if !errors.As(err, &se) || se.Script != "chunk" {
				t.Fatalf("RunString() error = %v, want *Error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.lua")
	if err := os.WriteFile(path, []byte(`print("typing") input.type("ok")`), 0o600); err != nil {
		t.Fatal(err)
	}
	r, rec := newRunner(t)
	if err := r.RunFile(context.Background(), path); err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if len(rec.events) != 6 {
		t.Errorf("got %d events, want 6", len(rec.events))
	}
}

func TestCancelledRun(t *testing.T) {
	rec := &recorder{}
	r := New(rec)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.RunString(ctx, "loop", `while true do input.wait(10) end`); err == nil {
		t.Error("RunString() with cancelled context succeeded")
	}
}

func TestClosedRunner(t *testing.T) {
	r, _ := newRunner(t)
	r.Close()
	if err := r.RunString(context.Background(), "x", `input.type("a")`); !errors.Is(err, ErrClosed) {
		t.Errorf("RunString() after Close = %v, want ErrClosed", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
