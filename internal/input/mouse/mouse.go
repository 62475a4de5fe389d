// Package mouse defines mouse button identifiers.
//
// Buttons are single bits so that the set of held buttons fits in one
// Button value. Eight slots are supported.
package mouse

import (
	"math/bits"
	"strings"
)

// Button is a mouse button id or a bitmask of held buttons.
type Button uint32

const (
	// ButtonNone indicates no button.
	ButtonNone Button = 0
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = 0x01
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight Button = 0x02
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle Button = 0x04
	// Button3 is usually the back navigation button.
	Button3 Button = 0x08
	// Button4 is usually the forward navigation button.
	Button4 Button = 0x10
	Button5 Button = 0x20
	Button6 Button = 0x40
	Button7 Button = 0x80
)

// MaxSlots is the number of tracked button slots.
const MaxSlots = 8

// FromSlot returns the button id for slot 0-7, or ButtonNone.
func FromSlot(slot int) Button {
	if slot < 0 || slot >= MaxSlots {
		return ButtonNone
	}
	return Button(1) << slot
}

// Slot returns the slot index of a single button id. ok is false when b is
// not exactly one of the eight button bits.
func (b Button) Slot() (slot int, ok bool) {
	if b == 0 || b&(b-1) != 0 || b > Button7 {
		return 0, false
	}
	return bits.TrailingZeros32(uint32(b)), true
}

// Valid reports whether b is a single button within the eight slots.
func (b Button) Valid() bool {
	_, ok := b.Slot()
	return ok
}

// Has reports whether every bit of other is held in b.
func (b Button) Has(other Button) bool {
	return other != 0 && b&other == other
}

// Count returns the number of buttons held in the mask.
func (b Button) Count() int {
	return bits.OnesCount32(uint32(b))
}

var buttonNames = [MaxSlots]string{"left", "right", "middle", "button3", "button4", "button5", "button6", "button7"}

// String returns a representation like "left|middle".
func (b Button) String() string {
	if b == ButtonNone {
		return "none"
	}
	var parts []string
	for slot := 0; slot < MaxSlots; slot++ {
		if b&FromSlot(slot) != 0 {
			parts = append(parts, buttonNames[slot])
		}
	}
	if b > 0xff {
		parts = append(parts, "invalid")
	}
	return strings.Join(parts, "|")
}

// FromName returns the button for a name such as "left" or "button4".
func FromName(name string) Button {
	name = strings.ToLower(strings.TrimSpace(name))
	for slot, n := range buttonNames {
		if n == name {
			return FromSlot(slot)
		}
	}
	switch name {
	case "primary":
		return ButtonLeft
	case "secondary":
		return ButtonRight
	case "back":
		return Button3
	case "forward":
		return Button4
	}
	return ButtonNone
}
