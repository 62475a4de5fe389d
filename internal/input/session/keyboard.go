package session

import (
	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
)

// Stroke is the translated form of one native key event.
type Stroke struct {
	Key      key.Key
	Scancode uint32
	Flags    key.Modifier
}

// Keyboard pairs key presses with releases using a down table indexed by
// the native key index, and tracks the held modifier keys.
type Keyboard struct {
	sink    event.Sink
	down    []bool
	strokes []Stroke
	held    map[key.Modifier]int
}

// NewKeyboard creates a keyboard tracker for native indices in [0, size).
func NewKeyboard(sink event.Sink, size int) *Keyboard {
	return &Keyboard{
		sink:    sink,
		down:    make([]bool, size),
		strokes: make([]Stroke, size),
		held:    make(map[key.Modifier]int, 4),
	}
}

// Modifiers returns the modifier flags of the held modifier keys.
func (k *Keyboard) Modifiers() key.Modifier {
	var m key.Modifier
	for mod, n := range k.held {
		if n > 0 {
			m |= mod
		}
	}
	return m
}

// IsDown reports whether the key at slot is held.
func (k *Keyboard) IsDown(slot int) bool {
	return slot >= 0 && slot < len(k.down) && k.down[slot]
}

// Press emits KeyDown if the key at slot was up. Auto-repeat presses of a
// held key are swallowed.
func (k *Keyboard) Press(slot int, s Stroke) bool {
	if slot < 0 || slot >= len(k.down) || k.down[slot] {
		return false
	}
	k.down[slot] = true
	k.strokes[slot] = s
	if mod := s.Key.Modifier(); mod != key.ModNone {
		k.held[mod]++
	}
	return k.post(event.KindKeyDown, s)
}

// Release emits KeyUp if the key at slot was down.
func (k *Keyboard) Release(slot int, s Stroke) bool {
	if slot < 0 || slot >= len(k.down) || !k.down[slot] {
		return false
	}
	k.down[slot] = false
	if mod := k.strokes[slot].Key.Modifier(); mod != key.ModNone && k.held[mod] > 0 {
		k.held[mod]--
	}
	return k.post(event.KindKeyUp, s)
}

// Set drives the key at slot to the given state, emitting the transition
// if any. Polling backends use it to diff snapshots.
func (k *Keyboard) Set(slot int, down bool, s Stroke) bool {
	if down {
		return k.Press(slot, s)
	}
	return k.Release(slot, s)
}

// Char emits a Char event. Text is independent of the down table: it may
// arrive on press, on release or with no key event at all.
func (k *Keyboard) Char(r rune, scancode uint32) bool {
	return k.sink.Post(event.NewChar(r, scancode))
}

// ReleaseAll emits KeyUp for every held key.
func (k *Keyboard) ReleaseAll() int {
	n := 0
	for slot, down := range k.down {
		if down && k.Release(slot, k.strokes[slot]) {
			n++
		}
	}
	return n
}

func (k *Keyboard) post(kind event.Kind, s Stroke) bool {
	return k.sink.Post(event.NewKey(kind, s.Key, s.Scancode, s.Flags|k.Modifiers()))
}
