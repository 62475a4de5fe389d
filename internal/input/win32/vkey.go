package win32

import (
	"sync"

	"github.com/dshills/keystream/internal/input/key"
)

// Virtual key codes.
const (
	VK_BACK             = 0x08
	VK_TAB              = 0x09
	VK_CLEAR            = 0x0c
	VK_RETURN           = 0x0d
	VK_SHIFT            = 0x10
	VK_CONTROL          = 0x11
	VK_MENU             = 0x12
	VK_PAUSE            = 0x13
	VK_CAPITAL          = 0x14
	VK_ESCAPE           = 0x1b
	VK_SPACE            = 0x20
	VK_PRIOR            = 0x21
	VK_NEXT             = 0x22
	VK_END              = 0x23
	VK_HOME             = 0x24
	VK_LEFT             = 0x25
	VK_UP               = 0x26
	VK_RIGHT            = 0x27
	VK_DOWN             = 0x28
	VK_SNAPSHOT         = 0x2c
	VK_INSERT           = 0x2d
	VK_DELETE           = 0x2e
	VK_LWIN             = 0x5b
	VK_RWIN             = 0x5c
	VK_APPS             = 0x5d
	VK_NUMPAD0          = 0x60
	VK_NUMPAD9          = 0x69
	VK_MULTIPLY         = 0x6a
	VK_ADD              = 0x6b
	VK_SEPARATOR        = 0x6c
	VK_SUBTRACT         = 0x6d
	VK_DECIMAL          = 0x6e
	VK_DIVIDE           = 0x6f
	VK_F1               = 0x70
	VK_F24              = 0x87
	VK_NUMLOCK          = 0x90
	VK_SCROLL           = 0x91
	VK_LSHIFT           = 0xa0
	VK_RSHIFT           = 0xa1
	VK_LCONTROL         = 0xa2
	VK_RCONTROL         = 0xa3
	VK_LMENU            = 0xa4
	VK_RMENU            = 0xa5
	VK_BROWSER_SEARCH   = 0xaa
	VK_VOLUME_MUTE      = 0xad
	VK_VOLUME_DOWN      = 0xae
	VK_VOLUME_UP        = 0xaf
	VK_MEDIA_NEXT_TRACK = 0xb0
	VK_MEDIA_PREV_TRACK = 0xb1
	VK_MEDIA_STOP       = 0xb2
	VK_MEDIA_PLAY_PAUSE = 0xb3
	VK_LAUNCH_MAIL      = 0xb4
	VK_OEM_1            = 0xba
	VK_OEM_PLUS         = 0xbb
	VK_OEM_COMMA        = 0xbc
	VK_OEM_MINUS        = 0xbd
	VK_OEM_PERIOD       = 0xbe
	VK_OEM_2            = 0xbf
	VK_OEM_3            = 0xc0
	VK_OEM_4            = 0xdb
	VK_OEM_5            = 0xdc
	VK_OEM_6            = 0xdd
	VK_OEM_7            = 0xde
	VK_OEM_102          = 0xe2
)

// scanRShift is the make code of the right shift key.
const scanRShift = 0x36

var (
	vkeyOnce  sync.Once
	vkeyTable *key.Table
)

// VKeyTable returns the fixed virtual key to key id table. Letters, digits,
// function and numpad keys are handled by range in Translate.
func VKeyTable() *key.Table {
	vkeyOnce.Do(func() {
		vkeyTable = key.TableFrom(map[uint32]key.Key{
			VK_BACK:             key.KeyBackspace,
			VK_TAB:              key.KeyTab,
			VK_CLEAR:            key.KeyClear,
			VK_RETURN:           key.KeyReturn,
			VK_PAUSE:            key.KeyPause,
			VK_CAPITAL:          key.KeyCapsLock,
			VK_ESCAPE:           key.KeyEscape,
			VK_SPACE:            key.KeySpace,
			VK_PRIOR:            key.KeyPageUp,
			VK_NEXT:             key.KeyPageDown,
			VK_END:              key.KeyEnd,
			VK_HOME:             key.KeyHome,
			VK_LEFT:             key.KeyLeft,
			VK_UP:               key.KeyUp,
			VK_RIGHT:            key.KeyRight,
			VK_DOWN:             key.KeyDown,
			VK_SNAPSHOT:         key.KeyPrintScreen,
			VK_INSERT:           key.KeyInsert,
			VK_DELETE:           key.KeyDelete,
			VK_LWIN:             key.KeyLMeta,
			VK_RWIN:             key.KeyRMeta,
			VK_APPS:             key.KeyMenu,
			VK_MULTIPLY:         key.KeyNPMultiply,
			VK_ADD:              key.KeyNPPlus,
			VK_SEPARATOR:        key.KeyNPDecimal,
			VK_SUBTRACT:         key.KeyNPMinus,
			VK_DECIMAL:          key.KeyNPDecimal,
			VK_DIVIDE:           key.KeyNPDivide,
			VK_NUMLOCK:          key.KeyNPNumLock,
			VK_SCROLL:           key.KeyScrollLock,
			VK_LSHIFT:           key.KeyLShift,
			VK_RSHIFT:           key.KeyRShift,
			VK_LCONTROL:         key.KeyLCtrl,
			VK_RCONTROL:         key.KeyRCtrl,
			VK_LMENU:            key.KeyLAlt,
			VK_RMENU:            key.KeyRAlt,
			VK_BROWSER_SEARCH:   key.KeySearch,
			VK_VOLUME_MUTE:      key.KeyMute,
			VK_VOLUME_DOWN:      key.KeyVolumeDown,
			VK_VOLUME_UP:        key.KeyVolumeUp,
			VK_MEDIA_NEXT_TRACK: key.KeyMediaNext,
			VK_MEDIA_PREV_TRACK: key.KeyMediaPrevious,
			VK_MEDIA_STOP:       key.KeyMediaStop,
			VK_MEDIA_PLAY_PAUSE: key.KeyMediaPlayPause,
			VK_LAUNCH_MAIL:      key.KeyEnvelope,
			VK_OEM_1:            key.KeySemicolon,
			VK_OEM_PLUS:         key.KeyPlus,
			VK_OEM_COMMA:        key.KeyComma,
			VK_OEM_MINUS:        key.KeyMinus,
			VK_OEM_PERIOD:       key.KeyPeriod,
			VK_OEM_2:            key.KeySlash,
			VK_OEM_3:            key.KeyGraveAccent,
			VK_OEM_4:            key.KeyLeftBracket,
			VK_OEM_5:            key.KeyBackslash,
			VK_OEM_6:            key.KeyRightBracket,
			VK_OEM_7:            key.KeyQuote,
			VK_OEM_102:          key.KeyLess,
		})
	})
	return vkeyTable
}

// Translate maps a raw keyboard record to a key id. The generic shift,
// control and alt virtual keys are split into left and right by make code
// and the E0 prefix.
func Translate(makeCode, vkey, flags uint16) key.Key {
	extended := flags&RI_KEY_E0 != 0
	switch {
	case vkey >= 'A' && vkey <= 'Z':
		return key.KeyA + key.Key(vkey-'A')
	case vkey >= '0' && vkey <= '9':
		return key.Key0 + key.Key(vkey-'0')
	case vkey >= VK_F1 && vkey <= VK_F24:
		return key.KeyF1 + key.Key(vkey-VK_F1)
	case vkey >= VK_NUMPAD0 && vkey <= VK_NUMPAD9:
		return key.KeyNP0 + key.Key(vkey-VK_NUMPAD0)
	}

	switch vkey {
	case VK_SHIFT:
		if makeCode == scanRShift {
			return key.KeyRShift
		}
		return key.KeyLShift
	case VK_CONTROL:
		if extended {
			return key.KeyRCtrl
		}
		return key.KeyLCtrl
	case VK_MENU:
		if extended {
			return key.KeyRAlt
		}
		return key.KeyLAlt
	case VK_RETURN:
		if extended {
			return key.KeyNPEnter
		}
	}
	return VKeyTable().Lookup(uint32(vkey))
}
