package key

import (
	"fmt"
	"strings"
)

// Key is a platform-independent key identifier.
//
// Printable keys use the upper-case ASCII code of the character printed on
// a US keyboard (KeyA == 'A'). Special keys live above 0x100. Keys a
// translator could not classify carry KeyUnknown, and layout-dependent keys
// that produce a non-ASCII character live in the KeyNonASCII namespace.
type Key uint32

// Printable keys.
const (
	KeySpace            Key = 32
	KeyExclamation      Key = 33
	KeyDoubleQuote      Key = 34
	KeyHash             Key = 35
	KeyDollar           Key = 36
	KeyPercent          Key = 37
	KeyAmpersand        Key = 38
	KeyQuote            Key = 39
	KeyLeftParenthesis  Key = 40
	KeyRightParenthesis Key = 41
	KeyAsterisk         Key = 42
	KeyPlus             Key = 43
	KeyComma            Key = 44
	KeyMinus            Key = 45
	KeyPeriod           Key = 46
	KeySlash            Key = 47
	Key0                Key = 48
	Key1                Key = 49
	Key2                Key = 50
	Key3                Key = 51
	Key4                Key = 52
	Key5                Key = 53
	Key6                Key = 54
	Key7                Key = 55
	Key8                Key = 56
	Key9                Key = 57
	KeyColon            Key = 58
	KeySemicolon        Key = 59
	KeyLess             Key = 60
	KeyEqual            Key = 61
	KeyGreater          Key = 62
	KeyQuestion         Key = 63
	KeyAt               Key = 64
	KeyA                Key = 65
	KeyB                Key = 66
	KeyC                Key = 67
	KeyD                Key = 68
	KeyE                Key = 69
	KeyF                Key = 70
	KeyG                Key = 71
	KeyH                Key = 72
	KeyI                Key = 73
	KeyJ                Key = 74
	KeyK                Key = 75
	KeyL                Key = 76
	KeyM                Key = 77
	KeyN                Key = 78
	KeyO                Key = 79
	KeyP                Key = 80
	KeyQ                Key = 81
	KeyR                Key = 82
	KeyS                Key = 83
	KeyT                Key = 84
	KeyU                Key = 85
	KeyV                Key = 86
	KeyW                Key = 87
	KeyX                Key = 88
	KeyY                Key = 89
	KeyZ                Key = 90
	KeyLeftBracket      Key = 91
	KeyBackslash        Key = 92
	KeyRightBracket     Key = 93
	KeyPower            Key = 94
	KeyUnderscore       Key = 95
	KeyGraveAccent      Key = 96
	KeyLeftCurl         Key = 123
	KeyBar              Key = 124
	KeyRightCurl        Key = 125
	KeyTilde            Key = 126
)

// Special keys.
const (
	KeyReturn Key = 0x100 + iota
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyNP0
	KeyNP1
	KeyNP2
	KeyNP3
	KeyNP4
	KeyNP5
	KeyNP6
	KeyNP7
	KeyNP8
	KeyNP9
	KeyNPPlus
	KeyNPMinus
	KeyNPDecimal
	KeyNPDivide
	KeyNPMultiply
	KeyNPNumLock
	KeyNPEqual
	KeyNPEnter

	// Modifier keys
	KeyCapsLock
	KeyLShift
	KeyLCtrl
	KeyLAlt
	KeyLMeta
	KeyRShift
	KeyRCtrl
	KeyRAlt
	KeyRMeta
	KeyMenu
	KeyFn

	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyTab
	KeyBack
	KeyCall
	KeyEndCall
	KeySearch
	KeyCenter
	KeyVolumeUp
	KeyVolumeDown
	KeyCamera
	KeyClear
	KeySym
)

// Device and media keys.
const (
	KeyExplorer Key = 0x1b0 + iota
	KeyEnvelope
	KeyEnter
	KeyNum
	KeyHeadsetHook
	KeyCameraFocus
	KeyNotification
	KeyMediaPlayPause
	KeyMediaStop
	KeyMediaNext
	KeyMediaPrevious
	KeyMediaRewind
	KeyMediaFastForward
	KeyMute
	KeyPictSymbols
	KeySwitchCharset
)

const (
	// KeyUnknown is the sentinel for native codes with no translation.
	KeyUnknown Key = 0xffff

	// KeyNonASCII flags the namespace of layout-dependent keys whose
	// character falls outside ASCII. The low byte carries the character.
	KeyNonASCII Key = 0x10000

	KeyApostrophe Key = 0x10001
	KeyPound      Key = 0x10002
	KeyEuro       Key = 0x10003
	KeyParagraph  Key = 0x100a4
	KeyAcute      Key = 0x100ab
	KeyUml        Key = 0x100ac
	KeyAUml       Key = 0x1008a
	KeyARing      Key = 0x1008c
	KeyOUml       Key = 0x1009a

	// KeyLastReserved is the upper bound of the non-ASCII namespace.
	KeyLastReserved Key = 0x1ffff
)

// NonASCII returns the flagged key id for a layout character outside ASCII.
func NonASCII(code byte) Key {
	return KeyNonASCII | Key(code)
}

// IsNonASCII reports whether k lives in the flagged non-ASCII namespace.
func (k Key) IsNonASCII() bool {
	return k >= KeyNonASCII && k <= KeyLastReserved
}

// IsUnknown reports whether k is the unmapped sentinel (or zero).
func (k Key) IsUnknown() bool {
	return k == KeyUnknown || k == 0
}

// IsPrintable reports whether k is one of the printable ASCII key ids.
func (k Key) IsPrintable() bool {
	return k >= KeySpace && k <= KeyTilde
}

// IsFunctionKey returns true for F1 through F24.
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF24
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsKeypadKey returns true if this is a numeric keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyNP0 && k <= KeyNPEnter
}

// IsModifier returns true for shift, control, alt, meta, caps lock, menu and fn.
func (k Key) IsModifier() bool {
	return k >= KeyCapsLock && k <= KeyFn
}

// Modifier returns the modifier flag a held key contributes, if any.
func (k Key) Modifier() Modifier {
	switch k {
	case KeyLShift, KeyRShift:
		return ModShift
	case KeyLCtrl, KeyRCtrl:
		return ModCtrl
	case KeyLAlt, KeyRAlt:
		return ModAlt
	case KeyLMeta, KeyRMeta:
		return ModMeta
	}
	return ModNone
}

// Rune returns the character a printable key produces on a US layout.
// It returns 0 for keys that do not produce a character.
func (k Key) Rune(shift bool) rune {
	if k >= KeyA && k <= KeyZ {
		if shift {
			return rune(k)
		}
		return rune(k) + ('a' - 'A')
	}
	if shift {
		if r, ok := usShifted[k]; ok {
			return r
		}
	}
	switch {
	case k.IsPrintable():
		return rune(k)
	case k == KeyReturn || k == KeyNPEnter:
		return '\n'
	case k == KeyTab:
		return '\t'
	case k >= KeyNP0 && k <= KeyNP9:
		return '0' + rune(k-KeyNP0)
	}
	switch k {
	case KeyNPPlus:
		return '+'
	case KeyNPMinus:
		return '-'
	case KeyNPDecimal:
		return '.'
	case KeyNPDivide:
		return '/'
	case KeyNPMultiply:
		return '*'
	}
	return 0
}

var usShifted = map[Key]rune{
	Key1: '!', Key2: '@', Key3: '#', Key4: '$', Key5: '%',
	Key6: '^', Key7: '&', Key8: '*', Key9: '(', Key0: ')',
	KeyMinus: '_', KeyEqual: '+', KeyLeftBracket: '{', KeyRightBracket: '}',
	KeyBackslash: '|', KeySemicolon: ':', KeyQuote: '"', KeyComma: '<',
	KeyPeriod: '>', KeySlash: '?', KeyGraveAccent: '~',
}

// keyNames holds the canonical name of every named key.
var keyNames = map[Key]string{
	KeySpace: "Space", KeyExclamation: "!", KeyDoubleQuote: "\"", KeyHash: "#",
	KeyDollar: "$", KeyPercent: "%", KeyAmpersand: "&", KeyQuote: "'",
	KeyLeftParenthesis: "(", KeyRightParenthesis: ")", KeyAsterisk: "*",
	KeyPlus: "+", KeyComma: ",", KeyMinus: "-", KeyPeriod: ".", KeySlash: "/",
	KeyColon: ":", KeySemicolon: ";", KeyLess: "<", KeyEqual: "=",
	KeyGreater: ">", KeyQuestion: "?", KeyAt: "@", KeyLeftBracket: "[",
	KeyBackslash: "\\", KeyRightBracket: "]", KeyPower: "^", KeyUnderscore: "_",
	KeyGraveAccent: "`", KeyLeftCurl: "{", KeyBar: "|", KeyRightCurl: "}",
	KeyTilde: "~",

	KeyReturn: "Return", KeyEscape: "Escape", KeyBackspace: "Backspace",
	KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyNPPlus: "NP+", KeyNPMinus: "NP-", KeyNPDecimal: "NP.", KeyNPDivide: "NP/",
	KeyNPMultiply: "NP*", KeyNPNumLock: "NumLock", KeyNPEqual: "NP=",
	KeyNPEnter: "NPEnter",

	KeyCapsLock: "CapsLock", KeyLShift: "LShift", KeyLCtrl: "LCtrl",
	KeyLAlt: "LAlt", KeyLMeta: "LMeta", KeyRShift: "RShift", KeyRCtrl: "RCtrl",
	KeyRAlt: "RAlt", KeyRMeta: "RMeta", KeyMenu: "Menu", KeyFn: "Fn",

	KeyInsert: "Insert", KeyDelete: "Delete", KeyHome: "Home", KeyEnd: "End",
	KeyPageUp: "PageUp", KeyPageDown: "PageDown", KeyPrintScreen: "PrintScreen",
	KeyScrollLock: "ScrollLock", KeyPause: "Pause", KeyTab: "Tab",
	KeyBack: "Back", KeyCall: "Call", KeyEndCall: "EndCall", KeySearch: "Search",
	KeyCenter: "Center", KeyVolumeUp: "VolumeUp", KeyVolumeDown: "VolumeDown",
	KeyCamera: "Camera", KeyClear: "Clear", KeySym: "Sym",

	KeyExplorer: "Explorer", KeyEnvelope: "Envelope", KeyEnter: "Enter",
	KeyNum: "Num", KeyHeadsetHook: "HeadsetHook", KeyCameraFocus: "CameraFocus",
	KeyNotification: "Notification", KeyMediaPlayPause: "MediaPlayPause",
	KeyMediaStop: "MediaStop", KeyMediaNext: "MediaNext",
	KeyMediaPrevious: "MediaPrevious", KeyMediaRewind: "MediaRewind",
	KeyMediaFastForward: "MediaFastForward", KeyMute: "Mute",
	KeyPictSymbols: "PictSymbols", KeySwitchCharset: "SwitchCharset",

	KeyUnknown: "Unknown", KeyApostrophe: "Apostrophe", KeyPound: "Pound",
	KeyEuro: "Euro", KeyParagraph: "Paragraph", KeyAcute: "Acute",
	KeyUml: "Uml", KeyAUml: "AUml", KeyARing: "ARing", KeyOUml: "OUml",
}

// nameKeys is the reverse of keyNames, keyed by lower-case name.
var nameKeys = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+64)
	for k, name := range keyNames {
		m[strings.ToLower(name)] = k
	}
	for k := KeyA; k <= KeyZ; k++ {
		m[strings.ToLower(string(rune(k)))] = k
	}
	for k := Key0; k <= Key9; k++ {
		m[string(rune(k))] = k
	}
	for i := Key(0); i < 24; i++ {
		m[fmt.Sprintf("f%d", i+1)] = KeyF1 + i
	}
	for i := Key(0); i < 10; i++ {
		m[fmt.Sprintf("np%d", i)] = KeyNP0 + i
	}
	m["esc"] = KeyEscape
	m["enter"] = KeyEnter
	m["cr"] = KeyReturn
	m["bs"] = KeyBackspace
	m["del"] = KeyDelete
	m["ins"] = KeyInsert
	m["pgup"] = KeyPageUp
	m["pgdn"] = KeyPageDown
	return m
}()

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= KeyA && k <= KeyZ, k >= Key0 && k <= Key9:
		return string(rune(k))
	case k.IsFunctionKey():
		return fmt.Sprintf("F%d", k-KeyF1+1)
	case k >= KeyNP0 && k <= KeyNP9:
		return fmt.Sprintf("NP%d", k-KeyNP0)
	case k.IsNonASCII():
		return fmt.Sprintf("NonASCII(0x%02x)", uint32(k&0xff))
	default:
		return fmt.Sprintf("Key(0x%x)", uint32(k))
	}
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyUnknown if the name is not recognized.
func KeyFromName(name string) Key {
	trimmed := strings.TrimSpace(name)
	if k, ok := nameKeys[strings.ToLower(trimmed)]; ok {
		return k
	}
	// Single punctuation characters name themselves.
	if r := []rune(trimmed); len(r) == 1 && r[0] >= rune(KeySpace) && r[0] <= rune(KeyTilde) {
		return Key(r[0])
	}
	return KeyUnknown
}
