package macos

import (
	"unicode"

	"github.com/dshills/keystream/internal/input/key"
)

// Apple virtual keycodes, from Inside Macintosh.
const (
	mkA            = 0x00
	mkS            = 0x01
	mkD            = 0x02
	mkF            = 0x03
	mkH            = 0x04
	mkG            = 0x05
	mkZ            = 0x06
	mkX            = 0x07
	mkC            = 0x08
	mkV            = 0x09
	mkB            = 0x0b
	mkQ            = 0x0c
	mkW            = 0x0d
	mkE            = 0x0e
	mkR            = 0x0f
	mkY            = 0x10
	mkT            = 0x11
	mk1            = 0x12
	mk2            = 0x13
	mk3            = 0x14
	mk4            = 0x15
	mk6            = 0x16
	mk5            = 0x17
	mkEquals       = 0x18
	mk9            = 0x19
	mk7            = 0x1a
	mkMinus        = 0x1b
	mk8            = 0x1c
	mk0            = 0x1d
	mkRightBracket = 0x1e
	mkO            = 0x1f
	mkU            = 0x20
	mkLeftBracket  = 0x21
	mkI            = 0x22
	mkP            = 0x23
	mkReturn       = 0x24
	mkL            = 0x25
	mkJ            = 0x26
	mkQuote        = 0x27
	mkK            = 0x28
	mkSemicolon    = 0x29
	mkBackslash    = 0x2a
	mkComma        = 0x2b
	mkSlash        = 0x2c
	mkN            = 0x2d
	mkM            = 0x2e
	mkPeriod       = 0x2f
	mkTab          = 0x30
	mkSpace        = 0x31
	mkGrave        = 0x32
	mkBackspace    = 0x33
	mkEscape       = 0x35
	mkRCommand     = 0x36
	mkCommand      = 0x37
	mkShift        = 0x38
	mkCapsLock     = 0x39
	mkAlt          = 0x3a
	mkCtrl         = 0x3b
	mkRShift       = 0x3c
	mkRAlt         = 0x3d
	mkRCtrl        = 0x3e
	mkFn           = 0x3f
	mkKPPeriod     = 0x41
	mkKPMultiply   = 0x43
	mkKPPlus       = 0x45
	mkNumLock      = 0x47
	mkKPDivide     = 0x4b
	mkKPEnter      = 0x4c
	mkKPMinus      = 0x4e
	mkKPEquals     = 0x51
	mkKP0          = 0x52
	mkKP1          = 0x53
	mkKP2          = 0x54
	mkKP3          = 0x55
	mkKP4          = 0x56
	mkKP5          = 0x57
	mkKP6          = 0x58
	mkKP7          = 0x59
	mkKP8          = 0x5b
	mkKP9          = 0x5c
	mkF5           = 0x60
	mkF6           = 0x61
	mkF7           = 0x62
	mkF3           = 0x63
	mkF8           = 0x64
	mkF9           = 0x65
	mkF11          = 0x67
	mkF13          = 0x69
	mkF16          = 0x6a
	mkF14          = 0x6b
	mkF10          = 0x6d
	mkF12          = 0x6f
	mkF15          = 0x71
	mkHelp         = 0x72
	mkHome         = 0x73
	mkPageUp       = 0x74
	mkDelete       = 0x75
	mkF4           = 0x76
	mkEnd          = 0x77
	mkF2           = 0x78
	mkPageDown     = 0x79
	mkF1           = 0x7a
	mkLeft         = 0x7b
	mkRight        = 0x7c
	mkDown         = 0x7d
	mkUp           = 0x7e
	mkPower        = 0x7f
)

// tableSize covers the keycodes probed when overlaying a layout.
const tableSize = 0x200

// usKeycodes is the layout-independent default, matching a US keyboard.
var usKeycodes = map[uint32]key.Key{
	mkA: key.KeyA, mkB: key.KeyB, mkC: key.KeyC, mkD: key.KeyD, mkE: key.KeyE,
	mkF: key.KeyF, mkG: key.KeyG, mkH: key.KeyH, mkI: key.KeyI, mkJ: key.KeyJ,
	mkK: key.KeyK, mkL: key.KeyL, mkM: key.KeyM, mkN: key.KeyN, mkO: key.KeyO,
	mkP: key.KeyP, mkQ: key.KeyQ, mkR: key.KeyR, mkS: key.KeyS, mkT: key.KeyT,
	mkU: key.KeyU, mkV: key.KeyV, mkW: key.KeyW, mkX: key.KeyX, mkY: key.KeyY,
	mkZ: key.KeyZ,
	mk0: key.Key0, mk1: key.Key1, mk2: key.Key2, mk3: key.Key3, mk4: key.Key4,
	mk5: key.Key5, mk6: key.Key6, mk7: key.Key7, mk8: key.Key8, mk9: key.Key9,

	mkF1: key.KeyF1, mkF2: key.KeyF2, mkF3: key.KeyF3, mkF4: key.KeyF4,
	mkF5: key.KeyF5, mkF6: key.KeyF6, mkF7: key.KeyF7, mkF8: key.KeyF8,
	mkF9: key.KeyF9, mkF10: key.KeyF10, mkF11: key.KeyF11, mkF12: key.KeyF12,
	mkF13: key.KeyF13, mkF14: key.KeyF14, mkF15: key.KeyF15, mkF16: key.KeyF16,

	mkEscape: key.KeyEscape, mkGrave: key.KeyGraveAccent, mkMinus: key.KeyMinus,
	mkEquals: key.KeyEqual, mkBackspace: key.KeyBackspace, mkTab: key.KeyTab,
	mkLeftBracket: key.KeyLeftBracket, mkRightBracket: key.KeyRightBracket,
	mkBackslash: key.KeyBackslash, mkSemicolon: key.KeySemicolon,
	mkQuote: key.KeyQuote, mkReturn: key.KeyReturn, mkComma: key.KeyComma,
	mkPeriod: key.KeyPeriod, mkSlash: key.KeySlash, mkSpace: key.KeySpace,

	mkHelp: key.KeyInsert, mkHome: key.KeyHome, mkPageUp: key.KeyPageUp,
	mkDelete: key.KeyDelete, mkEnd: key.KeyEnd, mkPageDown: key.KeyPageDown,
	mkLeft: key.KeyLeft, mkRight: key.KeyRight, mkDown: key.KeyDown, mkUp: key.KeyUp,
	mkPower: key.KeyUnknown,

	mkCapsLock: key.KeyCapsLock, mkShift: key.KeyLShift, mkRShift: key.KeyRShift,
	mkCtrl: key.KeyLCtrl, mkRCtrl: key.KeyRCtrl, mkAlt: key.KeyLAlt,
	mkRAlt: key.KeyRAlt, mkCommand: key.KeyLMeta, mkRCommand: key.KeyRMeta,
	mkFn: key.KeyFn,
}

// keypad mappings are reinserted after a layout overlay, which would
// otherwise map them to the ASCII digits they print.
var keypadKeycodes = map[uint32]key.Key{
	mkNumLock: key.KeyNPNumLock, mkKPEquals: key.KeyNPEqual,
	mkKPDivide: key.KeyNPDivide, mkKPMultiply: key.KeyNPMultiply,
	mkKPMinus: key.KeyNPMinus, mkKPPlus: key.KeyNPPlus, mkKPEnter: key.KeyNPEnter,
	mkKPPeriod: key.KeyNPDecimal,
	mkKP0:      key.KeyNP0, mkKP1: key.KeyNP1, mkKP2: key.KeyNP2, mkKP3: key.KeyNP3,
	mkKP4: key.KeyNP4, mkKP5: key.KeyNP5, mkKP6: key.KeyNP6, mkKP7: key.KeyNP7,
	mkKP8: key.KeyNP8, mkKP9: key.KeyNP9,
}

// BuildTable returns the keycode table for layout. Keys that print a
// character under the layout are named by that character: ASCII by the
// upper-case key id, other Latin-1 characters in the non-ASCII namespace.
// A nil layout yields the US default.
func BuildTable(layout Layout) *key.Table {
	t := key.TableFrom(usKeycodes)
	if layout != nil {
		for code := uint32(0); code < tableSize; code++ {
			if k, ok := layoutKey(layout, uint16(code)); ok {
				t.Set(code, k)
			}
		}
	}
	for code, k := range keypadKeycodes {
		t.Set(code, k)
	}
	return t
}

func layoutKey(layout Layout, code uint16) (key.Key, bool) {
	var dead uint32
	chars := layout.Translate(code, 0, &dead)
	if len(chars) == 0 && dead != 0 {
		// Dead key: a second press yields the accent itself.
		chars = layout.Translate(code, 0, &dead)
	}
	if len(chars) == 0 {
		return 0, false
	}

	// Characters beyond Latin-1 keep the US default for the position.
	r := chars[0]
	switch {
	case r > 0xff:
		return 0, false
	case r >= 127:
		return key.NonASCII(byte(r)), true
	case r >= 32:
		return key.Key(unicode.ToUpper(r)), true
	}
	return 0, false
}
