package android

import "github.com/dshills/keystream/internal/input/key"

// USResolver resolves characters from the key code on a US layout. It
// stands in for the JNI resolver off-device and in tests.
var USResolver UnicodeResolver = UnicodeResolverFunc(usChar)

func usChar(ev *KeyEvent) rune {
	if ev.MetaState&(MetaCtrlOn|MetaAltOn|MetaMetaOn) != 0 {
		return 0
	}
	k := LookupKey(ev.KeyCode)
	shift := ev.MetaState&MetaShiftOn != 0
	if k >= key.KeyA && k <= key.KeyZ && ev.MetaState&MetaCapsLockOn != 0 {
		shift = !shift
	}
	switch k {
	case key.KeyEnter:
		return '\n'
	case key.KeyApostrophe:
		if shift {
			return '"'
		}
		return '\''
	}
	return k.Rune(shift)
}
