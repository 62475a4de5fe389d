package evdev

import (
	"sync"

	"github.com/dshills/keystream/internal/input/key"
)

// keySlots covers KEY_* and BTN_* codes.
const keySlots = 0x300

var (
	codeOnce  sync.Once
	codeTable *key.Table
)

// CodeTable returns the KEY_* code to key id table, from
// linux/input-event-codes.h.
func CodeTable() *key.Table {
	codeOnce.Do(func() {
		codeTable = key.TableFrom(map[uint32]key.Key{
			1: key.KeyEscape,
			2: key.Key1, 3: key.Key2, 4: key.Key3, 5: key.Key4, 6: key.Key5,
			7: key.Key6, 8: key.Key7, 9: key.Key8, 10: key.Key9, 11: key.Key0,
			12: key.KeyMinus, 13: key.KeyEqual, 14: key.KeyBackspace, 15: key.KeyTab,
			16: key.KeyQ, 17: key.KeyW, 18: key.KeyE, 19: key.KeyR, 20: key.KeyT,
			21: key.KeyY, 22: key.KeyU, 23: key.KeyI, 24: key.KeyO, 25: key.KeyP,
			26: key.KeyLeftBracket, 27: key.KeyRightBracket, 28: key.KeyReturn,
			29: key.KeyLCtrl,
			30: key.KeyA, 31: key.KeyS, 32: key.KeyD, 33: key.KeyF, 34: key.KeyG,
			35: key.KeyH, 36: key.KeyJ, 37: key.KeyK, 38: key.KeyL,
			39: key.KeySemicolon, 40: key.KeyQuote, 41: key.KeyGraveAccent,
			42: key.KeyLShift, 43: key.KeyBackslash,
			44: key.KeyZ, 45: key.KeyX, 46: key.KeyC, 47: key.KeyV, 48: key.KeyB,
			49: key.KeyN, 50: key.KeyM,
			51: key.KeyComma, 52: key.KeyPeriod, 53: key.KeySlash, 54: key.KeyRShift,
			55: key.KeyNPMultiply, 56: key.KeyLAlt, 57: key.KeySpace, 58: key.KeyCapsLock,
			59: key.KeyF1, 60: key.KeyF2, 61: key.KeyF3, 62: key.KeyF4, 63: key.KeyF5,
			64: key.KeyF6, 65: key.KeyF7, 66: key.KeyF8, 67: key.KeyF9, 68: key.KeyF10,
			69: key.KeyNPNumLock, 70: key.KeyScrollLock,
			71: key.KeyNP7, 72: key.KeyNP8, 73: key.KeyNP9, 74: key.KeyNPMinus,
			75: key.KeyNP4, 76: key.KeyNP5, 77: key.KeyNP6, 78: key.KeyNPPlus,
			79: key.KeyNP1, 80: key.KeyNP2, 81: key.KeyNP3, 82: key.KeyNP0,
			83: key.KeyNPDecimal,
			86: key.KeyLess, 87: key.KeyF11, 88: key.KeyF12,
			96: key.KeyNPEnter, 97: key.KeyRCtrl, 98: key.KeyNPDivide,
			99: key.KeyPrintScreen, 100: key.KeyRAlt,
			102: key.KeyHome, 103: key.KeyUp, 104: key.KeyPageUp, 105: key.KeyLeft,
			106: key.KeyRight, 107: key.KeyEnd, 108: key.KeyDown, 109: key.KeyPageDown,
			110: key.KeyInsert, 111: key.KeyDelete,
			113: key.KeyMute, 114: key.KeyVolumeDown, 115: key.KeyVolumeUp,
			116: key.KeyPower, 117: key.KeyNPEqual, 119: key.KeyPause,
			125: key.KeyLMeta, 126: key.KeyRMeta, 127: key.KeyMenu,
			139: key.KeyMenu, 155: key.KeyEnvelope, 158: key.KeyBack,
			163: key.KeyMediaNext, 164: key.KeyMediaPlayPause,
			165: key.KeyMediaPrevious, 166: key.KeyMediaStop,
			168: key.KeyMediaRewind, 208: key.KeyMediaFastForward,
			212: key.KeyCamera, 217: key.KeySearch,
			0x1d0: key.KeyFn,
		})
		for i := uint32(0); i < 12; i++ {
			codeTable.Set(183+i, key.KeyF13+key.Key(i))
		}
	})
	return codeTable
}

var buttonCodes = map[uint16]int{
	BtnLeft:    0,
	BtnRight:   1,
	BtnMiddle:  2,
	BtnSide:    3,
	BtnExtra:   4,
	BtnForward: 5,
	BtnBack:    6,
	BtnTask:    7,
}
