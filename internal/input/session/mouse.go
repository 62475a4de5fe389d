package session

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/mouse"
)

type press struct {
	x, y int
	at   time.Time
}

// Mouse tracks pointer position and held buttons.
type Mouse struct {
	sink    event.Sink
	clock   clock.Clock
	x, y    int
	buttons mouse.Button
	origin  [mouse.MaxSlots]press
}

// NewMouse creates a mouse tracker posting to sink.
func NewMouse(sink event.Sink, clk clock.Clock) *Mouse {
	if clk == nil {
		clk = clock.New()
	}
	return &Mouse{sink: sink, clock: clk}
}

// Position returns the last known pointer position.
func (m *Mouse) Position() (x, y int) {
	return m.x, m.y
}

// Buttons returns the mask of held buttons.
func (m *Mouse) Buttons() mouse.Button {
	return m.buttons
}

// Warp moves the tracked position without emitting an event.
func (m *Mouse) Warp(x, y int) {
	m.x, m.y = x, y
}

// Press records a button going down at (x, y) and emits MouseDown.
// Buttons outside the eight slots and repeated presses are ignored.
func (m *Mouse) Press(b mouse.Button, x, y int) bool {
	slot, ok := b.Slot()
	if !ok || m.buttons.Has(b) {
		return false
	}
	m.buttons |= b
	m.origin[slot] = press{x: x, y: y, at: m.clock.Now()}
	m.x, m.y = x, y
	return m.sink.Post(event.NewMouse(event.KindMouseDown, event.MousePayload{
		X: x, Y: y, Button: b, Buttons: m.buttons,
	}))
}

// Release records a button going up at (x, y) and emits MouseUp with the
// offset from the press origin and the hold duration in DZ.
func (m *Mouse) Release(b mouse.Button, x, y int) bool {
	slot, ok := b.Slot()
	if !ok || !m.buttons.Has(b) {
		return false
	}
	m.buttons &^= b
	o := m.origin[slot]
	m.x, m.y = x, y
	return m.sink.Post(event.NewMouse(event.KindMouseUp, event.MousePayload{
		X:       x,
		Y:       y,
		DX:      float64(x - o.x),
		DY:      float64(y - o.y),
		DZ:      m.clock.Since(o.at).Seconds(),
		Button:  b,
		Buttons: m.buttons,
	}))
}

// Move updates the position to (x, y) and emits MouseMove when the
// position changed or dz is non-zero.
func (m *Mouse) Move(x, y int, dz float64) bool {
	return m.MoveDelta(x, y, float64(x-m.x), float64(y-m.y), dz)
}

// MoveDelta updates the position to (x, y) and emits MouseMove carrying
// the given deltas when any of them is non-zero.
func (m *Mouse) MoveDelta(x, y int, dx, dy, dz float64) bool {
	m.x, m.y = x, y
	if dx == 0 && dy == 0 && dz == 0 {
		return false
	}
	return m.sink.Post(event.NewMouse(event.KindMouseMove, event.MousePayload{
		X: x, Y: y, DX: dx, DY: dy, DZ: dz, Buttons: m.buttons,
	}))
}

// ReleaseAll emits MouseUp at the last position for every held button.
// It returns the number of synthesized releases.
func (m *Mouse) ReleaseAll() int {
	n := 0
	for slot := 0; slot < mouse.MaxSlots; slot++ {
		b := mouse.FromSlot(slot)
		if m.buttons.Has(b) && m.Release(b, m.x, m.y) {
			n++
		}
	}
	return n
}
