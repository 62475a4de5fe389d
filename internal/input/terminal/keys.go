package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keystream/internal/input/key"
)

var (
	namedOnce  sync.Once
	namedTable *key.Table
)

// NamedTable returns the table of tcell named keys. KeyRune and the
// control keys are resolved separately.
func NamedTable() *key.Table {
	namedOnce.Do(func() {
		namedTable = key.TableFrom(map[uint32]key.Key{
			uint32(tcell.KeyUp):         key.KeyUp,
			uint32(tcell.KeyDown):       key.KeyDown,
			uint32(tcell.KeyLeft):       key.KeyLeft,
			uint32(tcell.KeyRight):      key.KeyRight,
			uint32(tcell.KeyCenter):     key.KeyCenter,
			uint32(tcell.KeyPgUp):       key.KeyPageUp,
			uint32(tcell.KeyPgDn):       key.KeyPageDown,
			uint32(tcell.KeyHome):       key.KeyHome,
			uint32(tcell.KeyEnd):        key.KeyEnd,
			uint32(tcell.KeyInsert):     key.KeyInsert,
			uint32(tcell.KeyDelete):     key.KeyDelete,
			uint32(tcell.KeyClear):      key.KeyClear,
			uint32(tcell.KeyPrint):      key.KeyPrintScreen,
			uint32(tcell.KeyPause):      key.KeyPause,
			uint32(tcell.KeyBacktab):    key.KeyTab,
			uint32(tcell.KeyMenu):       key.KeyMenu,
			uint32(tcell.KeyCapsLock):   key.KeyCapsLock,
			uint32(tcell.KeyScrollLock): key.KeyScrollLock,
			uint32(tcell.KeyNumLock):    key.KeyNPNumLock,
			uint32(tcell.KeyBackspace):  key.KeyBackspace,
			uint32(tcell.KeyTab):        key.KeyTab,
			uint32(tcell.KeyEscape):     key.KeyEscape,
			uint32(tcell.KeyEnter):      key.KeyReturn,
			uint32(tcell.KeyDEL):        key.KeyBackspace,
		})
		for i := 0; i < 24; i++ {
			namedTable.Set(uint32(tcell.KeyF1)+uint32(i), key.KeyF1+key.Key(i))
		}
	})
	return namedTable
}

// runeKey folds a delivered character to a key id. Upper-case letters map
// to their letter key with shift reported.
func runeKey(r rune) (key.Key, key.Modifier) {
	switch {
	case r >= 'a' && r <= 'z':
		return key.Key(r - 'a' + 'A'), key.ModNone
	case r >= 'A' && r <= 'Z':
		return key.Key(r), key.ModShift
	case r >= ' ' && r <= '~':
		return key.Key(r), key.ModNone
	case r >= 0x80 && r <= 0xff:
		return key.NonASCII(byte(r)), key.ModNone
	}
	return key.KeyUnknown, key.ModNone
}

// resolve returns the key id, extra modifier flags and text of a tcell
// key event. A zero rune means the key types nothing.
func resolve(ev *tcell.EventKey) (key.Key, key.Modifier, rune) {
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		id, mods := runeKey(r)
		return id, mods, r
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.KeyA + key.Key(k-tcell.KeyCtrlA), key.ModCtrl, 0
	case k == tcell.KeyCtrlSpace:
		return key.KeySpace, key.ModCtrl, 0
	case k == tcell.KeyBacktab:
		return key.KeyTab, key.ModShift, 0
	}

	id := NamedTable().Lookup(uint32(k))
	switch id {
	case key.KeyReturn:
		return id, key.ModNone, '\n'
	case key.KeyTab:
		return id, key.ModNone, '\t'
	case key.KeyBackspace:
		return id, key.ModNone, '\b'
	case key.KeyDelete:
		return id, key.ModNone, 0x7f
	}
	return id, key.ModNone, 0
}

func modifiers(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
