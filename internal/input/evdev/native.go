// Package evdev reads Linux input devices and translates their event
// records into normalized input events.
//
// A device delivers struct input_event records grouped into frames, each
// closed by SYN_REPORT. The translator accumulates a frame and emits its
// motion, key and button changes, and multi-touch (protocol B) contacts
// when the frame closes. Manager discovers devices under /dev/input,
// follows hotplug through fsnotify and runs one translator per device.
package evdev

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Event types.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02
	EvAbs = 0x03
	EvMsc = 0x04
)

// Synchronization codes.
const (
	SynReport  = 0
	SynDropped = 3
)

// Relative axes.
const (
	RelX      = 0x00
	RelY      = 0x01
	RelHWheel = 0x06
	RelWheel  = 0x08
)

// Absolute axes.
const (
	AbsX            = 0x00
	AbsY            = 0x01
	AbsMTSlot       = 0x2f
	AbsMTPositionX  = 0x35
	AbsMTPositionY  = 0x36
	AbsMTTrackingID = 0x39
)

// Button codes.
const (
	BtnLeft    = 0x110
	BtnRight   = 0x111
	BtnMiddle  = 0x112
	BtnSide    = 0x113
	BtnExtra   = 0x114
	BtnForward = 0x115
	BtnBack    = 0x116
	BtnTask    = 0x117
	BtnTouch   = 0x14a
)

// EV_KEY values.
const (
	KeyReleased = 0
	KeyPressed  = 1
	KeyRepeated = 2
)

// EventSize is the size of struct input_event on 64-bit kernels.
const EventSize = 24

// InputEvent is one decoded input_event record.
type InputEvent struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

// Decode parses one record from the start of b.
func Decode(b []byte) (InputEvent, error) {
	if len(b) < EventSize {
		return InputEvent{}, fmt.Errorf("%w: %d bytes", ErrShortRecord, len(b))
	}
	sec := int64(binary.LittleEndian.Uint64(b[0:8]))
	usec := int64(binary.LittleEndian.Uint64(b[8:16]))
	return InputEvent{
		Time:  time.Unix(sec, usec*int64(time.Microsecond)),
		Type:  binary.LittleEndian.Uint16(b[16:18]),
		Code:  binary.LittleEndian.Uint16(b[18:20]),
		Value: int32(binary.LittleEndian.Uint32(b[20:24])),
	}, nil
}

// DecodeAll parses consecutive records. A trailing partial record is an
// error; the records before it are still returned.
func DecodeAll(b []byte) ([]InputEvent, error) {
	events := make([]InputEvent, 0, len(b)/EventSize)
	for len(b) >= EventSize {
		ev, _ := Decode(b)
		events = append(events, ev)
		b = b[EventSize:]
	}
	if len(b) != 0 {
		return events, fmt.Errorf("%w: %d trailing bytes", ErrShortRecord, len(b))
	}
	return events, nil
}
