package mobile

import (
	"sync"

	mkey "golang.org/x/mobile/event/key"

	"github.com/dshills/keystream/internal/input/key"
)

// hidSlots covers the HID usage codes x/mobile reports, up to the right
// GUI key.
const hidSlots = 256

var (
	hidOnce  sync.Once
	hidTable *key.Table
)

// CodeTable returns the HID usage code to key id table.
func CodeTable() *key.Table {
	hidOnce.Do(func() {
		hidTable = key.TableFrom(map[uint32]key.Key{
			uint32(mkey.CodeReturnEnter):        key.KeyReturn,
			uint32(mkey.CodeEscape):             key.KeyEscape,
			uint32(mkey.CodeDeleteBackspace):    key.KeyBackspace,
			uint32(mkey.CodeTab):                key.KeyTab,
			uint32(mkey.CodeSpacebar):           key.KeySpace,
			uint32(mkey.CodeHyphenMinus):        key.KeyMinus,
			uint32(mkey.CodeEqualSign):          key.KeyEqual,
			uint32(mkey.CodeLeftSquareBracket):  key.KeyLeftBracket,
			uint32(mkey.CodeRightSquareBracket): key.KeyRightBracket,
			uint32(mkey.CodeBackslash):          key.KeyBackslash,
			uint32(mkey.CodeSemicolon):          key.KeySemicolon,
			uint32(mkey.CodeApostrophe):         key.KeyQuote,
			uint32(mkey.CodeGraveAccent):        key.KeyGraveAccent,
			uint32(mkey.CodeComma):              key.KeyComma,
			uint32(mkey.CodeFullStop):           key.KeyPeriod,
			uint32(mkey.CodeSlash):              key.KeySlash,
			uint32(mkey.CodeCapsLock):           key.KeyCapsLock,

			uint32(mkey.CodePause):         key.KeyPause,
			uint32(mkey.CodeInsert):        key.KeyInsert,
			uint32(mkey.CodeHome):          key.KeyHome,
			uint32(mkey.CodePageUp):        key.KeyPageUp,
			uint32(mkey.CodeDeleteForward): key.KeyDelete,
			uint32(mkey.CodeEnd):           key.KeyEnd,
			uint32(mkey.CodePageDown):      key.KeyPageDown,
			uint32(mkey.CodeRightArrow):    key.KeyRight,
			uint32(mkey.CodeLeftArrow):     key.KeyLeft,
			uint32(mkey.CodeDownArrow):     key.KeyDown,
			uint32(mkey.CodeUpArrow):       key.KeyUp,

			uint32(mkey.CodeKeypadNumLock):     key.KeyNPNumLock,
			uint32(mkey.CodeKeypadSlash):       key.KeyNPDivide,
			uint32(mkey.CodeKeypadAsterisk):    key.KeyNPMultiply,
			uint32(mkey.CodeKeypadHyphenMinus): key.KeyNPMinus,
			uint32(mkey.CodeKeypadPlusSign):    key.KeyNPPlus,
			uint32(mkey.CodeKeypadEnter):       key.KeyNPEnter,
			uint32(mkey.CodeKeypad0):           key.KeyNP0,
			uint32(mkey.CodeKeypadFullStop):    key.KeyNPDecimal,
			uint32(mkey.CodeKeypadEqualSign):   key.KeyNPEqual,

			uint32(mkey.CodeHelp):       key.KeyInsert,
			uint32(mkey.CodeMute):       key.KeyMute,
			uint32(mkey.CodeVolumeUp):   key.KeyVolumeUp,
			uint32(mkey.CodeVolumeDown): key.KeyVolumeDown,

			uint32(mkey.CodeLeftControl):  key.KeyLCtrl,
			uint32(mkey.CodeLeftShift):    key.KeyLShift,
			uint32(mkey.CodeLeftAlt):      key.KeyLAlt,
			uint32(mkey.CodeLeftGUI):      key.KeyLMeta,
			uint32(mkey.CodeRightControl): key.KeyRCtrl,
			uint32(mkey.CodeRightShift):   key.KeyRShift,
			uint32(mkey.CodeRightAlt):     key.KeyRAlt,
			uint32(mkey.CodeRightGUI):     key.KeyRMeta,
		})
		for i := uint32(0); i < 26; i++ {
			hidTable.Set(uint32(mkey.CodeA)+i, key.KeyA+key.Key(i))
		}
		// HID orders the digits 1-9 then 0.
		for i := uint32(0); i < 9; i++ {
			hidTable.Set(uint32(mkey.Code1)+i, key.Key1+key.Key(i))
			hidTable.Set(uint32(mkey.CodeKeypad1)+i, key.KeyNP1+key.Key(i))
		}
		hidTable.Set(uint32(mkey.Code0), key.Key0)
		for i := uint32(0); i < 12; i++ {
			hidTable.Set(uint32(mkey.CodeF1)+i, key.KeyF1+key.Key(i))
			hidTable.Set(uint32(mkey.CodeF13)+i, key.KeyF13+key.Key(i))
		}
	})
	return hidTable
}

func modifiers(m mkey.Modifiers) key.Modifier {
	var result key.Modifier
	if m&mkey.ModShift != 0 {
		result |= key.ModShift
	}
	if m&mkey.ModControl != 0 {
		result |= key.ModCtrl
	}
	if m&mkey.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&mkey.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
