package event

import (
	"fmt"
	"time"

	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
)

// MaxFingers is the number of tracked touch slots.
const MaxFingers = 8

// Event is one normalized input record.
type Event struct {
	// Kind selects which payload type is carried.
	Kind Kind

	// Seq is the stream sequence number assigned on post.
	Seq uint64

	// Time is the stream clock reading when the event was posted.
	Time time.Time

	Payload Payload
}

// Payload is implemented by the payload records only.
type Payload interface {
	payload()
}

// KeyPayload carries KeyDown and KeyUp data.
type KeyPayload struct {
	Key      key.Key
	Scancode uint32
	Flags    key.Modifier
}

// CharPayload carries one composed character.
type CharPayload struct {
	Rune     rune
	Scancode uint32
}

// MousePayload carries mouse data. Button is the button that triggered a
// down or up event and zero for moves. Buttons is the mask held after the
// event. For MouseUp, DX/DY are the offset from the press origin and DZ is
// the hold duration in seconds.
type MousePayload struct {
	X, Y       int
	DX, DY, DZ float64
	Button     mouse.Button
	Buttons    mouse.Button
}

// TouchPayload carries touch data. Fingers is the bitmask of active slots.
type TouchPayload struct {
	X, Y     int
	DX, DY   float64
	Velocity float64
	Finger   uint8
	Fingers  uint8
}

// AccelerationPayload carries one accelerometer sample.
type AccelerationPayload struct {
	X, Y, Z float64
}

func (KeyPayload) payload()          {}
func (CharPayload) payload()         {}
func (MousePayload) payload()        {}
func (TouchPayload) payload()        {}
func (AccelerationPayload) payload() {}

// NewKey builds a KeyDown or KeyUp event.
func NewKey(kind Kind, k key.Key, scancode uint32, flags key.Modifier) Event {
	return Event{Kind: kind, Payload: KeyPayload{Key: k, Scancode: scancode, Flags: flags}}
}

// NewChar builds a Char event.
func NewChar(r rune, scancode uint32) Event {
	return Event{Kind: KindChar, Payload: CharPayload{Rune: r, Scancode: scancode}}
}

// NewMouse builds a mouse event.
func NewMouse(kind Kind, p MousePayload) Event {
	return Event{Kind: kind, Payload: p}
}

// NewTouch builds a touch event.
func NewTouch(kind Kind, p TouchPayload) Event {
	return Event{Kind: kind, Payload: p}
}

// NewAcceleration builds an Acceleration event.
func NewAcceleration(x, y, z float64) Event {
	return Event{Kind: KindAcceleration, Payload: AccelerationPayload{X: x, Y: y, Z: z}}
}

// Valid reports whether the payload matches the kind and slot ids are in
// range.
func (e Event) Valid() bool {
	switch p := e.Payload.(type) {
	case KeyPayload:
		return e.Kind.IsKey()
	case CharPayload:
		return e.Kind == KindChar
	case MousePayload:
		if !e.Kind.IsMouse() || p.Buttons > 0xff {
			return false
		}
		if e.Kind == KindMouseMove {
			return p.Button == mouse.ButtonNone
		}
		return p.Button.Valid()
	case TouchPayload:
		return e.Kind.IsTouch() && p.Finger < MaxFingers
	case AccelerationPayload:
		return e.Kind == KindAcceleration
	}
	return false
}

// Key returns the key payload. ok is false for other kinds.
func (e Event) Key() (KeyPayload, bool) {
	p, ok := e.Payload.(KeyPayload)
	return p, ok
}

// Char returns the char payload. ok is false for other kinds.
func (e Event) Char() (CharPayload, bool) {
	p, ok := e.Payload.(CharPayload)
	return p, ok
}

// Mouse returns the mouse payload. ok is false for other kinds.
func (e Event) Mouse() (MousePayload, bool) {
	p, ok := e.Payload.(MousePayload)
	return p, ok
}

// Touch returns the touch payload. ok is false for other kinds.
func (e Event) Touch() (TouchPayload, bool) {
	p, ok := e.Payload.(TouchPayload)
	return p, ok
}

// Acceleration returns the acceleration payload. ok is false for other kinds.
func (e Event) Acceleration() (AccelerationPayload, bool) {
	p, ok := e.Payload.(AccelerationPayload)
	return p, ok
}

// String returns a single-line description of the event.
func (e Event) String() string {
	switch p := e.Payload.(type) {
	case KeyPayload:
		if p.Flags != key.ModNone {
			return fmt.Sprintf("%s key=%s scancode=%#x flags=%s", e.Kind, p.Key, p.Scancode, p.Flags)
		}
		return fmt.Sprintf("%s key=%s scancode=%#x", e.Kind, p.Key, p.Scancode)
	case CharPayload:
		return fmt.Sprintf("%s char=%q (U+%04X) scancode=%#x", e.Kind, p.Rune, p.Rune, p.Scancode)
	case MousePayload:
		return fmt.Sprintf("%s pos=(%d,%d) delta=(%g,%g,%g) button=%s buttons=%s",
			e.Kind, p.X, p.Y, p.DX, p.DY, p.DZ, p.Button, p.Buttons)
	case TouchPayload:
		return fmt.Sprintf("%s pos=(%d,%d) delta=(%g,%g) velocity=%g finger=%d fingers=%#08b",
			e.Kind, p.X, p.Y, p.DX, p.DY, p.Velocity, p.Finger, p.Fingers)
	case AccelerationPayload:
		return fmt.Sprintf("%s (%g,%g,%g)", e.Kind, p.X, p.Y, p.Z)
	}
	return e.Kind.String()
}
