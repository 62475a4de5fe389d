package event

import "fmt"

// Kind identifies the class of an input event.
type Kind uint8

const (
	KindKeyDown Kind = iota + 1
	KindKeyUp
	KindChar
	KindMouseDown
	KindMouseUp
	KindMouseMove
	KindTouchBegin
	KindTouchEnd
	KindTouchCancel
	KindTouchMove
	KindTouchSwipe
	KindAcceleration
)

var kindNames = map[Kind]string{
	KindKeyDown:      "KeyDown",
	KindKeyUp:        "KeyUp",
	KindChar:         "Char",
	KindMouseDown:    "MouseDown",
	KindMouseUp:      "MouseUp",
	KindMouseMove:    "MouseMove",
	KindTouchBegin:   "TouchBegin",
	KindTouchEnd:     "TouchEnd",
	KindTouchCancel:  "TouchCancel",
	KindTouchMove:    "TouchMove",
	KindTouchSwipe:   "TouchSwipe",
	KindAcceleration: "Acceleration",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindFromName returns the kind with the given name, or zero.
func KindFromName(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return 0
}

// IsKey reports whether k is KeyDown or KeyUp.
func (k Kind) IsKey() bool {
	return k == KindKeyDown || k == KindKeyUp
}

// IsMouse reports whether k is a mouse kind.
func (k Kind) IsMouse() bool {
	return k >= KindMouseDown && k <= KindMouseMove
}

// IsTouch reports whether k is a touch kind.
func (k Kind) IsTouch() bool {
	return k >= KindTouchBegin && k <= KindTouchSwipe
}
