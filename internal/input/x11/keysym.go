package x11

import (
	"sync"

	"github.com/dshills/keystream/internal/input/key"
)

// Keysym values, from keysymdef.h and XF86keysym.h.
const (
	XKBackSpace       Keysym = 0xff08
	XKTab             Keysym = 0xff09
	XKClear           Keysym = 0xff0b
	XKReturn          Keysym = 0xff0d
	XKPause           Keysym = 0xff13
	XKScrollLock      Keysym = 0xff14
	XKEscape          Keysym = 0xff1b
	XKHome            Keysym = 0xff50
	XKLeft            Keysym = 0xff51
	XKUp              Keysym = 0xff52
	XKRight           Keysym = 0xff53
	XKDown            Keysym = 0xff54
	XKPageUp          Keysym = 0xff55
	XKPageDown        Keysym = 0xff56
	XKEnd             Keysym = 0xff57
	XKPrint           Keysym = 0xff61
	XKInsert          Keysym = 0xff63
	XKMenu            Keysym = 0xff67
	XKNumLock         Keysym = 0xff7f
	XKKPEnter         Keysym = 0xff8d
	XKKPHome          Keysym = 0xff95
	XKKPLeft          Keysym = 0xff96
	XKKPUp            Keysym = 0xff97
	XKKPRight         Keysym = 0xff98
	XKKPDown          Keysym = 0xff99
	XKKPPageUp        Keysym = 0xff9a
	XKKPPageDown      Keysym = 0xff9b
	XKKPEnd           Keysym = 0xff9c
	XKKPBegin         Keysym = 0xff9d
	XKKPInsert        Keysym = 0xff9e
	XKKPDelete        Keysym = 0xff9f
	XKKPMultiply      Keysym = 0xffaa
	XKKPAdd           Keysym = 0xffab
	XKKPSeparator     Keysym = 0xffac
	XKKPSubtract      Keysym = 0xffad
	XKKPDecimal       Keysym = 0xffae
	XKKPDivide        Keysym = 0xffaf
	XKKP0             Keysym = 0xffb0
	XKKP9             Keysym = 0xffb9
	XKKPEqual         Keysym = 0xffbd
	XKF1              Keysym = 0xffbe
	XKF24             Keysym = 0xffd5
	XKShiftL          Keysym = 0xffe1
	XKShiftR          Keysym = 0xffe2
	XKControlL        Keysym = 0xffe3
	XKControlR        Keysym = 0xffe4
	XKCapsLock        Keysym = 0xffe5
	XKMetaL           Keysym = 0xffe7
	XKMetaR           Keysym = 0xffe8
	XKAltL            Keysym = 0xffe9
	XKAltR            Keysym = 0xffea
	XKSuperL          Keysym = 0xffeb
	XKSuperR          Keysym = 0xffec
	XKDelete          Keysym = 0xffff
	XKISOLevel3Shift  Keysym = 0xfe03
	XKISOLeftTab      Keysym = 0xfe20
	XKEuroSign        Keysym = 0x20ac
	XF86AudioLowerVol Keysym = 0x1008ff11
	XF86AudioMute     Keysym = 0x1008ff12
	XF86AudioRaiseVol Keysym = 0x1008ff13
	XF86AudioPlay     Keysym = 0x1008ff14
	XF86AudioStop     Keysym = 0x1008ff15
	XF86AudioPrev     Keysym = 0x1008ff16
	XF86AudioNext     Keysym = 0x1008ff17
	XF86Mail          Keysym = 0x1008ff19
	XF86Search        Keysym = 0x1008ff1b
	XF86AudioRewind   Keysym = 0x1008ff3e
	XF86Explorer      Keysym = 0x1008ff5d
	XF86AudioForward  Keysym = 0x1008ff97
)

var (
	keysymOnce  sync.Once
	keysymTable *key.Table
)

// KeysymTable returns the keysym to key id table.
func KeysymTable() *key.Table {
	keysymOnce.Do(func() {
		keysymTable = buildKeysymTable()
	})
	return keysymTable
}

// LookupKey translates a keysym, returning key.KeyUnknown when unmapped.
func LookupKey(sym Keysym) key.Key {
	return KeysymTable().Lookup(uint32(sym))
}

func buildKeysymTable() *key.Table {
	t := key.NewTable()
	for c := 'a'; c <= 'z'; c++ {
		t.Set(uint32(c), key.KeyA+key.Key(c-'a'))
		t.Set(uint32(c-'a'+'A'), key.KeyA+key.Key(c-'a'))
	}
	for c := '0'; c <= '9'; c++ {
		t.Set(uint32(c), key.Key0+key.Key(c-'0'))
	}
	for i := Keysym(0); i <= XKF24-XKF1; i++ {
		t.Set(uint32(XKF1+i), key.KeyF1+key.Key(i))
	}
	for i := Keysym(0); i <= XKKP9-XKKP0; i++ {
		t.Set(uint32(XKKP0+i), key.KeyNP0+key.Key(i))
	}

	// Latin-1 punctuation keysyms equal their ASCII code.
	for _, k := range []key.Key{
		key.KeySpace, key.KeyExclamation, key.KeyDoubleQuote, key.KeyHash,
		key.KeyDollar, key.KeyPercent, key.KeyAmpersand,
		key.KeyLeftParenthesis, key.KeyRightParenthesis, key.KeyAsterisk,
		key.KeyPlus, key.KeyComma, key.KeyMinus, key.KeyPeriod, key.KeySlash,
		key.KeyColon, key.KeySemicolon, key.KeyLess, key.KeyEqual,
		key.KeyGreater, key.KeyQuestion, key.KeyAt, key.KeyLeftBracket,
		key.KeyBackslash, key.KeyRightBracket, key.KeyPower, key.KeyUnderscore,
		key.KeyGraveAccent, key.KeyLeftCurl, key.KeyBar, key.KeyRightCurl,
		key.KeyTilde,
	} {
		t.Set(uint32(k), k)
	}

	for sym, k := range map[Keysym]key.Key{
		0x27:              key.KeyApostrophe,
		0xa3:              key.KeyPound,
		0xa7:              key.KeyParagraph,
		0xa8:              key.KeyUml,
		0xb4:              key.KeyAcute,
		0xc4:              key.KeyAUml,
		0xc5:              key.KeyARing,
		0xd6:              key.KeyOUml,
		0xe4:              key.KeyAUml,
		0xe5:              key.KeyARing,
		0xf6:              key.KeyOUml,
		XKEuroSign:        key.KeyEuro,
		XKBackSpace:       key.KeyBackspace,
		XKTab:             key.KeyTab,
		XKISOLeftTab:      key.KeyTab,
		XKClear:           key.KeyClear,
		XKReturn:          key.KeyReturn,
		XKPause:           key.KeyPause,
		XKScrollLock:      key.KeyScrollLock,
		XKEscape:          key.KeyEscape,
		XKHome:            key.KeyHome,
		XKLeft:            key.KeyLeft,
		XKUp:              key.KeyUp,
		XKRight:           key.KeyRight,
		XKDown:            key.KeyDown,
		XKPageUp:          key.KeyPageUp,
		XKPageDown:        key.KeyPageDown,
		XKEnd:             key.KeyEnd,
		XKPrint:           key.KeyPrintScreen,
		XKInsert:          key.KeyInsert,
		XKMenu:            key.KeyMenu,
		XKNumLock:         key.KeyNPNumLock,
		XKKPEnter:         key.KeyNPEnter,
		XKKPHome:          key.KeyNP7,
		XKKPLeft:          key.KeyNP4,
		XKKPUp:            key.KeyNP8,
		XKKPRight:         key.KeyNP6,
		XKKPDown:          key.KeyNP2,
		XKKPPageUp:        key.KeyNP9,
		XKKPPageDown:      key.KeyNP3,
		XKKPEnd:           key.KeyNP1,
		XKKPBegin:         key.KeyNP5,
		XKKPInsert:        key.KeyNP0,
		XKKPDelete:        key.KeyNPDecimal,
		XKKPMultiply:      key.KeyNPMultiply,
		XKKPAdd:           key.KeyNPPlus,
		XKKPSeparator:     key.KeyNPDecimal,
		XKKPSubtract:      key.KeyNPMinus,
		XKKPDecimal:       key.KeyNPDecimal,
		XKKPDivide:        key.KeyNPDivide,
		XKKPEqual:         key.KeyNPEqual,
		XKShiftL:          key.KeyLShift,
		XKShiftR:          key.KeyRShift,
		XKControlL:        key.KeyLCtrl,
		XKControlR:        key.KeyRCtrl,
		XKCapsLock:        key.KeyCapsLock,
		XKMetaL:           key.KeyLMeta,
		XKMetaR:           key.KeyRMeta,
		XKAltL:            key.KeyLAlt,
		XKAltR:            key.KeyRAlt,
		XKISOLevel3Shift:  key.KeyRAlt,
		XKSuperL:          key.KeyLMeta,
		XKSuperR:          key.KeyRMeta,
		XKDelete:          key.KeyDelete,
		XF86AudioLowerVol: key.KeyVolumeDown,
		XF86AudioMute:     key.KeyMute,
		XF86AudioRaiseVol: key.KeyVolumeUp,
		XF86AudioPlay:     key.KeyMediaPlayPause,
		XF86AudioStop:     key.KeyMediaStop,
		XF86AudioPrev:     key.KeyMediaPrevious,
		XF86AudioNext:     key.KeyMediaNext,
		XF86Mail:          key.KeyEnvelope,
		XF86Search:        key.KeySearch,
		XF86AudioRewind:   key.KeyMediaRewind,
		XF86Explorer:      key.KeyExplorer,
		XF86AudioForward:  key.KeyMediaFastForward,
	} {
		t.Set(uint32(sym), k)
	}
	return t
}
