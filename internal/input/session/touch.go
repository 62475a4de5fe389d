package session

import (
	"math"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dshills/keystream/internal/input/event"
)

type contact struct {
	active       bool
	beginX       int
	beginY       int
	lastX, lastY int
	begin        time.Time
}

// Touch tracks up to eight concurrent contacts.
type Touch struct {
	sink     event.Sink
	clock    clock.Clock
	fingers  uint8
	contacts [event.MaxFingers]contact
}

// NewTouch creates a touch tracker posting to sink.
func NewTouch(sink event.Sink, clk clock.Clock) *Touch {
	if clk == nil {
		clk = clock.New()
	}
	return &Touch{sink: sink, clock: clk}
}

// Fingers returns the mask of active contacts.
func (t *Touch) Fingers() uint8 {
	return t.fingers
}

// Active reports whether finger has an active contact.
func (t *Touch) Active(finger int) bool {
	return finger >= 0 && finger < event.MaxFingers && t.contacts[finger].active
}

// Begin starts a contact. A begin on an already active slot cancels the
// stale contact first.
func (t *Touch) Begin(finger, x, y int) bool {
	if finger < 0 || finger >= event.MaxFingers {
		return false
	}
	c := &t.contacts[finger]
	if c.active {
		t.Cancel(finger, c.lastX, c.lastY)
	}
	*c = contact{active: true, beginX: x, beginY: y, lastX: x, lastY: y, begin: t.clock.Now()}
	t.fingers |= 1 << finger
	return t.post(event.KindTouchBegin, finger, x, y, 0, 0, 0)
}

// Move emits TouchMove with the delta from the previous sample and the
// velocity since the contact began.
func (t *Touch) Move(finger, x, y int) bool {
	c, ok := t.contact(finger)
	if !ok {
		return false
	}
	dx, dy := float64(x-c.lastX), float64(y-c.lastY)
	velocity, _ := t.velocity(c, x, y)
	c.lastX, c.lastY = x, y
	return t.post(event.KindTouchMove, finger, x, y, dx, dy, velocity)
}

// End finishes a contact. It emits TouchEnd with the delta from the
// origin and the contact duration in seconds in the velocity field, then
// TouchSwipe with the same delta and the real velocity.
func (t *Touch) End(finger, x, y int) bool {
	c, ok := t.contact(finger)
	if !ok {
		return false
	}
	dx, dy := float64(x-c.beginX), float64(y-c.beginY)
	velocity, elapsed := t.velocity(c, x, y)
	c.active = false
	t.fingers &^= 1 << finger

	ended := t.post(event.KindTouchEnd, finger, x, y, dx, dy, elapsed)
	t.sink.Post(event.NewTouch(event.KindTouchSwipe, event.TouchPayload{
		X: x, Y: y, DX: dx, DY: dy, Velocity: velocity,
	}))
	return ended
}

// Cancel aborts a contact and emits TouchCancel with zero delta and
// velocity.
func (t *Touch) Cancel(finger, x, y int) bool {
	c, ok := t.contact(finger)
	if !ok {
		return false
	}
	c.active = false
	t.fingers &^= 1 << finger
	return t.post(event.KindTouchCancel, finger, x, y, 0, 0, 0)
}

// CancelAll aborts every active contact at its last sample.
func (t *Touch) CancelAll() int {
	n := 0
	for finger := range t.contacts {
		c := &t.contacts[finger]
		if c.active && t.Cancel(finger, c.lastX, c.lastY) {
			n++
		}
	}
	return n
}

func (t *Touch) contact(finger int) (*contact, bool) {
	if finger < 0 || finger >= event.MaxFingers || !t.contacts[finger].active {
		return nil, false
	}
	return &t.contacts[finger], true
}

func (t *Touch) velocity(c *contact, x, y int) (velocity, elapsed float64) {
	elapsed = t.clock.Since(c.begin).Seconds()
	if elapsed > 0 {
		velocity = math.Hypot(float64(x-c.beginX), float64(y-c.beginY)) / elapsed
	}
	return velocity, elapsed
}

func (t *Touch) post(kind event.Kind, finger, x, y int, dx, dy, velocity float64) bool {
	return t.sink.Post(event.NewTouch(kind, event.TouchPayload{
		X:        x,
		Y:        y,
		DX:       dx,
		DY:       dy,
		Velocity: velocity,
		Finger:   uint8(finger),
		Fingers:  t.fingers,
	}))
}
