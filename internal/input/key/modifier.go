package key

import "strings"

// Modifier is the modifier state attached to a key stroke.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates either Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModCtrl indicates either Control key.
	ModCtrl

	// ModAlt indicates either Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates either Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModCapsLock is set while caps lock is engaged.
	ModCapsLock

	// ModNumLock is set while num lock is engaged.
	ModNumLock

	// ModExtended marks a keypad or E0-prefixed key.
	ModExtended
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
	{ModCapsLock, "CapsLock"},
	{ModNumLock, "NumLock"},
	{ModExtended, "Ext"},
}

// String returns a representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModifiers parses a modifier list such as "ctrl+shift".
// Unknown names are ignored.
func ParseModifiers(s string) Modifier {
	var result Modifier
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		part = strings.TrimSpace(part)
		for _, n := range modifierNames {
			if strings.ToLower(n.name) == part {
				result = result.With(n.mod)
			}
		}
		switch part {
		case "control":
			result = result.With(ModCtrl)
		case "cmd", "super", "win":
			result = result.With(ModMeta)
		case "option", "opt":
			result = result.With(ModAlt)
		}
	}
	return result
}
