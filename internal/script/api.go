package script

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// stroke is the US-layout key sequence typing one character.
type stroke struct {
	k     key.Key
	shift bool
}

var usStrokes = func() map[rune]stroke {
	m := map[rune]stroke{
		'\n': {k: key.KeyReturn},
		'\t': {k: key.KeyTab},
	}
	for k := key.KeySpace; k <= key.KeyTilde; k++ {
		if r := k.Rune(false); r != 0 {
			if _, ok := m[r]; !ok {
				m[r] = stroke{k: k}
			}
		}
	}
	// Shifted characters are typed with their base key and shift.
	for k := key.KeySpace; k <= key.KeyTilde; k++ {
		if r := k.Rune(true); r != 0 && r != k.Rune(false) {
			m[r] = stroke{k: k, shift: true}
		}
	}
	return m
}()

func (r *Runner) install() {
	L := r.L
	L.SetGlobal("print", L.NewFunction(r.print))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"key_down":     r.luaKeyDown,
		"key_up":       r.luaKeyUp,
		"type":         r.luaType,
		"char":         r.luaChar,
		"mouse_move":   r.luaMouseMove,
		"mouse_down":   r.luaMouseDown,
		"mouse_up":     r.luaMouseUp,
		"click":        r.luaClick,
		"touch_begin":  r.luaTouchBegin,
		"touch_move":   r.luaTouchMove,
		"touch_end":    r.luaTouchEnd,
		"touch_cancel": r.luaTouchCancel,
		"accel":        r.luaAccel,
		"wait":         r.luaWait,
		"release_all":  r.luaReleaseAll,

		"post_key":          r.luaPostKey,
		"post_mouse":        r.luaPostMouse,
		"post_touch":        r.luaPostTouch,
		"post_acceleration": r.luaPostAcceleration,
	})
	L.SetGlobal("input", mod)
}

func checkKey(L *lua.LState, n int) key.Key {
	name := L.CheckString(n)
	k := key.KeyFromName(name)
	if k == key.KeyUnknown {
		L.ArgError(n, "unknown key "+name)
	}
	return k
}

func checkButton(L *lua.LState, n int) mouse.Button {
	name := L.CheckString(n)
	b := mouse.FromName(name)
	if b == mouse.ButtonNone {
		L.ArgError(n, "unknown button "+name)
	}
	return b
}

func optButtons(L *lua.LState, n int) mouse.Button {
	name := L.OptString(n, "none")
	if name == "none" || name == "" {
		return mouse.ButtonNone
	}
	var mask mouse.Button
	for _, part := range splitMask(name) {
		b := mouse.FromName(part)
		if b == mouse.ButtonNone {
			L.ArgError(n, "unknown button "+part)
		}
		mask |= b
	}
	return mask
}

func splitMask(s string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '|' || s[i] == '+' {
			if i > start {
				parts = append(parts, s[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

func checkKind(L *lua.LState, n int) event.Kind {
	name := L.CheckString(n)
	kind := event.KindFromName(name)
	if kind == 0 {
		L.ArgError(n, "unknown event kind "+name)
	}
	return kind
}

func (r *Runner) luaKeyDown(L *lua.LState) int {
	k := checkKey(L, 1)
	scancode := uint32(L.OptInt(2, 0))
	L.Push(lua.LBool(r.keys.Press(r.slot(k), session.Stroke{Key: k, Scancode: scancode})))
	return 1
}

func (r *Runner) luaKeyUp(L *lua.LState) int {
	k := checkKey(L, 1)
	scancode := uint32(L.OptInt(2, 0))
	L.Push(lua.LBool(r.keys.Release(r.slot(k), session.Stroke{Key: k, Scancode: scancode})))
	return 1
}

// luaType presses, types and releases each character of the argument on
// a US layout. Characters without a key are posted as Char only.
func (r *Runner) luaType(L *lua.LState) int {
	for _, c := range L.CheckString(1) {
		s, ok := usStrokes[c]
		if !ok {
			r.keys.Char(c, 0)
			continue
		}
		shifted := s.shift && !r.keys.Modifiers().Has(key.ModShift)
		if shifted {
			r.keys.Press(r.slot(key.KeyLShift), session.Stroke{Key: key.KeyLShift})
		}
		r.keys.Press(r.slot(s.k), session.Stroke{Key: s.k})
		r.keys.Char(c, 0)
		r.keys.Release(r.slot(s.k), session.Stroke{Key: s.k})
		if shifted {
			r.keys.Release(r.slot(key.KeyLShift), session.Stroke{Key: key.KeyLShift})
		}
	}
	return 0
}

func (r *Runner) luaChar(L *lua.LState) int {
	for _, c := range L.CheckString(1) {
		r.keys.Char(c, 0)
	}
	return 0
}

func (r *Runner) luaMouseMove(L *lua.LState) int {
	x, y := L.CheckInt(1), L.CheckInt(2)
	dz := float64(L.OptNumber(3, 0))
	L.Push(lua.LBool(r.mouse.Move(x, y, dz)))
	return 1
}

// position reads optional x, y arguments starting at n, defaulting to the
// current pointer position.
func (r *Runner) position(L *lua.LState, n int) (int, int) {
	x, y := r.mouse.Position()
	return L.OptInt(n, x), L.OptInt(n+1, y)
}

func (r *Runner) luaMouseDown(L *lua.LState) int {
	b := checkButton(L, 1)
	x, y := r.position(L, 2)
	L.Push(lua.LBool(r.mouse.Press(b, x, y)))
	return 1
}

func (r *Runner) luaMouseUp(L *lua.LState) int {
	b := checkButton(L, 1)
	x, y := r.position(L, 2)
	L.Push(lua.LBool(r.mouse.Release(b, x, y)))
	return 1
}

func (r *Runner) luaClick(L *lua.LState) int {
	b := checkButton(L, 1)
	x, y := r.position(L, 2)
	ok := r.mouse.Press(b, x, y) && r.mouse.Release(b, x, y)
	L.Push(lua.LBool(ok))
	return 1
}

func (r *Runner) luaTouchBegin(L *lua.LState) int {
	L.Push(lua.LBool(r.touch.Begin(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))))
	return 1
}

func (r *Runner) luaTouchMove(L *lua.LState) int {
	L.Push(lua.LBool(r.touch.Move(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))))
	return 1
}

func (r *Runner) luaTouchEnd(L *lua.LState) int {
	L.Push(lua.LBool(r.touch.End(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))))
	return 1
}

func (r *Runner) luaTouchCancel(L *lua.LState) int {
	L.Push(lua.LBool(r.touch.Cancel(L.CheckInt(1), L.OptInt(2, 0), L.OptInt(3, 0))))
	return 1
}

func (r *Runner) luaAccel(L *lua.LState) int {
	x, y, z := float64(L.CheckNumber(1)), float64(L.CheckNumber(2)), float64(L.CheckNumber(3))
	L.Push(lua.LBool(r.poster.PostAcceleration(event.KindAcceleration, x, y, z)))
	return 1
}

// luaWait blocks for the given seconds on the runner's clock, or until
// the run is cancelled.
func (r *Runner) luaWait(L *lua.LState) int {
	d := time.Duration(float64(L.CheckNumber(1)) * float64(time.Second))
	if d <= 0 {
		return 0
	}
	ctx := L.Context()
	if ctx == nil {
		r.clock.Sleep(d)
		return 0
	}
	select {
	case <-r.clock.After(d):
	case <-ctx.Done():
		L.RaiseError("wait interrupted: %v", ctx.Err())
	}
	return 0
}

func (r *Runner) luaReleaseAll(L *lua.LState) int {
	r.releaseAll()
	return 0
}

func (r *Runner) luaPostKey(L *lua.LState) int {
	kind := checkKind(L, 1)
	k := checkKey(L, 2)
	scancode := uint32(L.OptInt(3, 0))
	flags := key.ParseModifiers(L.OptString(4, ""))
	L.Push(lua.LBool(r.poster.PostKey(kind, k, scancode, flags)))
	return 1
}

func (r *Runner) luaPostMouse(L *lua.LState) int {
	kind := checkKind(L, 1)
	x, y := L.CheckInt(2), L.CheckInt(3)
	dx, dy, dz := float64(L.OptNumber(4, 0)), float64(L.OptNumber(5, 0)), float64(L.OptNumber(6, 0))
	button := optButtons(L, 7)
	buttons := optButtons(L, 8)
	L.Push(lua.LBool(r.poster.PostMouse(kind, x, y, dx, dy, dz, button, buttons)))
	return 1
}

func (r *Runner) luaPostTouch(L *lua.LState) int {
	kind := checkKind(L, 1)
	x, y := L.CheckInt(2), L.CheckInt(3)
	dx, dy, v := float64(L.OptNumber(4, 0)), float64(L.OptNumber(5, 0)), float64(L.OptNumber(6, 0))
	finger := L.OptInt(7, 0)
	fingers := uint8(L.OptInt(8, 0))
	L.Push(lua.LBool(r.poster.PostTouch(kind, x, y, dx, dy, v, finger, fingers)))
	return 1
}

func (r *Runner) luaPostAcceleration(L *lua.LState) int {
	kind := checkKind(L, 1)
	x, y, z := float64(L.OptNumber(2, 0)), float64(L.OptNumber(3, 0)), float64(L.OptNumber(4, 0))
	L.Push(lua.LBool(r.poster.PostAcceleration(kind, x, y, z)))
	return 1
}
