package android

import (
	"sync"

	"github.com/dshills/keystream/internal/input/key"
)

// Key codes, from android/keycodes.h.
const (
	KeycodeUnknown        = 0
	KeycodeSoftLeft       = 1
	KeycodeSoftRight      = 2
	KeycodeHome           = 3
	KeycodeBack           = 4
	KeycodeCall           = 5
	KeycodeEndCall        = 6
	Keycode0              = 7
	Keycode9              = 16
	KeycodeStar           = 17
	KeycodePound          = 18
	KeycodeDpadUp         = 19
	KeycodeDpadDown       = 20
	KeycodeDpadLeft       = 21
	KeycodeDpadRight      = 22
	KeycodeDpadCenter     = 23
	KeycodeVolumeUp       = 24
	KeycodeVolumeDown     = 25
	KeycodePower          = 26
	KeycodeCamera         = 27
	KeycodeClear          = 28
	KeycodeA              = 29
	KeycodeZ              = 54
	KeycodeComma          = 55
	KeycodePeriod         = 56
	KeycodeAltLeft        = 57
	KeycodeAltRight       = 58
	KeycodeShiftLeft      = 59
	KeycodeShiftRight     = 60
	KeycodeTab            = 61
	KeycodeSpace          = 62
	KeycodeSym            = 63
	KeycodeExplorer       = 64
	KeycodeEnvelope       = 65
	KeycodeEnter          = 66
	KeycodeDel            = 67
	KeycodeGrave          = 68
	KeycodeMinus          = 69
	KeycodeEquals         = 70
	KeycodeLeftBracket    = 71
	KeycodeRightBracket   = 72
	KeycodeBackslash      = 73
	KeycodeSemicolon      = 74
	KeycodeApostrophe     = 75
	KeycodeSlash          = 76
	KeycodeAt             = 77
	KeycodeNum            = 78
	KeycodeHeadsetHook    = 79
	KeycodeFocus          = 80
	KeycodePlus           = 81
	KeycodeMenu           = 82
	KeycodeNotification   = 83
	KeycodeSearch         = 84
	KeycodeMediaPlayPause = 85
	KeycodeMediaStop      = 86
	KeycodeMediaNext      = 87
	KeycodeMediaPrevious  = 88
	KeycodeMediaRewind    = 89
	KeycodeMediaFastFwd   = 90
	KeycodeMute           = 91
	KeycodePageUp         = 92
	KeycodePageDown       = 93
	KeycodePictSymbols    = 94
	KeycodeSwitchCharset  = 95
	KeycodeEscape         = 111
	KeycodeForwardDel     = 112
	KeycodeCtrlLeft       = 113
	KeycodeCtrlRight      = 114
	KeycodeCapsLock       = 115
	KeycodeScrollLock     = 116
	KeycodeMetaLeft       = 117
	KeycodeMetaRight      = 118
	KeycodeFunction       = 119
	KeycodeSysRq          = 120
	KeycodeBreak          = 121
	KeycodeMoveHome       = 122
	KeycodeMoveEnd        = 123
	KeycodeInsert         = 124
	KeycodeMediaPlay      = 126
	KeycodeMediaPause     = 127
	KeycodeF1             = 131
	KeycodeF12            = 142
	KeycodeNumLock        = 143
	KeycodeNumpad0        = 144
	KeycodeNumpad9        = 153
	KeycodeNumpadDivide   = 154
	KeycodeNumpadMultiply = 155
	KeycodeNumpadSubtract = 156
	KeycodeNumpadAdd      = 157
	KeycodeNumpadDot      = 158
	KeycodeNumpadComma    = 159
	KeycodeNumpadEnter    = 160
	KeycodeNumpadEquals   = 161
	KeycodeVolumeMute     = 164
)

// keycodeSlots bounds the key codes tracked for press/release pairing.
const keycodeSlots = 512

var (
	keycodeOnce  sync.Once
	keycodeTable *key.Table
)

// KeycodeTable returns the AKEYCODE to key id table. Game pad buttons
// (96-110) are left unmapped.
func KeycodeTable() *key.Table {
	keycodeOnce.Do(func() {
		keycodeTable = key.TableFrom(map[uint32]key.Key{
			KeycodeSoftLeft:       key.KeyLeft,
			KeycodeSoftRight:      key.KeyRight,
			KeycodeHome:           key.KeyHome,
			KeycodeBack:           key.KeyBack,
			KeycodeCall:           key.KeyCall,
			KeycodeEndCall:        key.KeyEndCall,
			KeycodeStar:           key.KeyAsterisk,
			KeycodePound:          key.KeyHash,
			KeycodeDpadUp:         key.KeyUp,
			KeycodeDpadDown:       key.KeyDown,
			KeycodeDpadLeft:       key.KeyLeft,
			KeycodeDpadRight:      key.KeyRight,
			KeycodeDpadCenter:     key.KeyCenter,
			KeycodeVolumeUp:       key.KeyVolumeUp,
			KeycodeVolumeDown:     key.KeyVolumeDown,
			KeycodePower:          key.KeyPower,
			KeycodeCamera:         key.KeyCamera,
			KeycodeClear:          key.KeyClear,
			KeycodeComma:          key.KeyComma,
			KeycodePeriod:         key.KeyPeriod,
			KeycodeAltLeft:        key.KeyLAlt,
			KeycodeAltRight:       key.KeyRAlt,
			KeycodeShiftLeft:      key.KeyLShift,
			KeycodeShiftRight:     key.KeyRShift,
			KeycodeTab:            key.KeyTab,
			KeycodeSpace:          key.KeySpace,
			KeycodeSym:            key.KeySym,
			KeycodeExplorer:       key.KeyExplorer,
			KeycodeEnvelope:       key.KeyEnvelope,
			KeycodeEnter:          key.KeyEnter,
			KeycodeDel:            key.KeyBackspace,
			KeycodeGrave:          key.KeyGraveAccent,
			KeycodeMinus:          key.KeyMinus,
			KeycodeEquals:         key.KeyEqual,
			KeycodeLeftBracket:    key.KeyLeftBracket,
			KeycodeRightBracket:   key.KeyRightBracket,
			KeycodeBackslash:      key.KeyBackslash,
			KeycodeSemicolon:      key.KeySemicolon,
			KeycodeApostrophe:     key.KeyApostrophe,
			KeycodeSlash:          key.KeySlash,
			KeycodeAt:             key.KeyAt,
			KeycodeNum:            key.KeyNum,
			KeycodeHeadsetHook:    key.KeyHeadsetHook,
			KeycodeFocus:          key.KeyCameraFocus,
			KeycodePlus:           key.KeyPlus,
			KeycodeMenu:           key.KeyMenu,
			KeycodeNotification:   key.KeyNotification,
			KeycodeSearch:         key.KeySearch,
			KeycodeMediaPlayPause: key.KeyMediaPlayPause,
			KeycodeMediaStop:      key.KeyMediaStop,
			KeycodeMediaNext:      key.KeyMediaNext,
			KeycodeMediaPrevious:  key.KeyMediaPrevious,
			KeycodeMediaRewind:    key.KeyMediaRewind,
			KeycodeMediaFastFwd:   key.KeyMediaFastForward,
			KeycodeMute:           key.KeyMute,
			KeycodePageUp:         key.KeyPageUp,
			KeycodePageDown:       key.KeyPageDown,
			KeycodePictSymbols:    key.KeyPictSymbols,
			KeycodeSwitchCharset:  key.KeySwitchCharset,

			KeycodeEscape:         key.KeyEscape,
			KeycodeForwardDel:     key.KeyDelete,
			KeycodeCtrlLeft:       key.KeyLCtrl,
			KeycodeCtrlRight:      key.KeyRCtrl,
			KeycodeCapsLock:       key.KeyCapsLock,
			KeycodeScrollLock:     key.KeyScrollLock,
			KeycodeMetaLeft:       key.KeyLMeta,
			KeycodeMetaRight:      key.KeyRMeta,
			KeycodeFunction:       key.KeyFn,
			KeycodeSysRq:          key.KeyPrintScreen,
			KeycodeBreak:          key.KeyPause,
			KeycodeMoveHome:       key.KeyHome,
			KeycodeMoveEnd:        key.KeyEnd,
			KeycodeInsert:         key.KeyInsert,
			KeycodeMediaPlay:      key.KeyMediaPlayPause,
			KeycodeMediaPause:     key.KeyMediaPlayPause,
			KeycodeNumLock:        key.KeyNPNumLock,
			KeycodeNumpadDivide:   key.KeyNPDivide,
			KeycodeNumpadMultiply: key.KeyNPMultiply,
			KeycodeNumpadSubtract: key.KeyNPMinus,
			KeycodeNumpadAdd:      key.KeyNPPlus,
			KeycodeNumpadDot:      key.KeyNPDecimal,
			KeycodeNumpadComma:    key.KeyNPDecimal,
			KeycodeNumpadEnter:    key.KeyNPEnter,
			KeycodeNumpadEquals:   key.KeyNPEqual,
			KeycodeVolumeMute:     key.KeyMute,
		})
		for i := uint32(0); i < 10; i++ {
			keycodeTable.Set(Keycode0+i, key.Key0+key.Key(i))
			keycodeTable.Set(KeycodeNumpad0+i, key.KeyNP0+key.Key(i))
		}
		for i := uint32(0); i < 26; i++ {
			keycodeTable.Set(KeycodeA+i, key.KeyA+key.Key(i))
		}
		for i := uint32(0); i < 12; i++ {
			keycodeTable.Set(KeycodeF1+i, key.KeyF1+key.Key(i))
		}
	})
	return keycodeTable
}

// LookupKey translates an AKEYCODE.
func LookupKey(code int32) key.Key {
	if code < 0 {
		return key.KeyUnknown
	}
	return KeycodeTable().Lookup(uint32(code))
}
