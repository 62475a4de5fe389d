package script

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// keySlots bounds the distinct keys a script can hold.
const keySlots = 256

// Poster accepts raw input records. *input.Module implements it.
type Poster interface {
	PostKey(kind event.Kind, k key.Key, scancode uint32, flags key.Modifier) bool
	PostMouse(kind event.Kind, x, y int, dx, dy, dz float64, button, buttons mouse.Button) bool
	PostTouch(kind event.Kind, x, y int, dx, dy, velocity float64, finger int, fingers uint8) bool
	PostAcceleration(kind event.Kind, x, y, z float64) bool
}

// Runner executes input scripts.
//
// gopher-lua states are not goroutine-safe; the mutex serializes runs.
type Runner struct {
	mu     sync.Mutex
	L      *lua.LState
	poster Poster
	log    *zap.Logger
	clock  clock.Clock

	keys  *session.Keyboard
	mouse *session.Mouse
	touch *session.Touch
	slots map[key.Key]int

	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used by input.wait and the gesture trackers.
func WithClock(c clock.Clock) Option {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger receiving print output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a runner posting to p.
func New(p Poster, opts ...Option) *Runner {
	r := &Runner{
		poster: p,
		log:    zap.NewNop(),
		clock:  clock.New(),
		slots:  make(map[key.Key]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("script")

	sink := posterSink{p}
	r.keys = session.NewKeyboard(sink, keySlots)
	r.mouse = session.NewMouse(sink, r.clock)
	r.touch = session.NewTouch(sink, r.clock)

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.install()
	return r
}

// openSafeLibraries opens only libraries without file or process access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// RunFile executes the script at path. Cancelling ctx aborts it.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error { return r.L.DoFile(path) })
}

// RunString executes src, naming it name in errors.
func (r *Runner) RunString(ctx context.Context, name, src string) error {
	return r.run(ctx, name, func() error { return r.L.DoString(src) })
}

func (r *Runner) run(ctx context.Context, name string, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()
	defer func() {
		if p := recover(); p != nil {
			err = &Error{Script: name, Err: fmt.Errorf("lua panic: %v", p)}
		}
	}()

	if err := fn(); err != nil {
		return &Error{Script: name, Err: err}
	}
	return nil
}

// Close releases every key, button and contact the scripts left held and
// closes the Lua state.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.releaseAll()
	r.L.Close()
	return nil
}

func (r *Runner) releaseAll() {
	r.keys.ReleaseAll()
	r.mouse.ReleaseAll()
	r.touch.CancelAll()
}

// slot returns the keyboard slot for k, assigning one on first use.
func (r *Runner) slot(k key.Key) int {
	if s, ok := r.slots[k]; ok {
		return s
	}
	if len(r.slots) >= keySlots {
		return -1
	}
	s := len(r.slots)
	r.slots[k] = s
	return s
}

// posterSink adapts a Poster to event.Sink for the session trackers.
type posterSink struct {
	p Poster
}

func (s posterSink) Post(e event.Event) bool {
	switch p := e.Payload.(type) {
	case event.KeyPayload:
		return s.p.PostKey(e.Kind, p.Key, p.Scancode, p.Flags)
	case event.CharPayload:
		return s.p.PostKey(event.KindChar, key.Key(p.Rune), p.Scancode, key.ModNone)
	case event.MousePayload:
		return s.p.PostMouse(e.Kind, p.X, p.Y, p.DX, p.DY, p.DZ, p.Button, p.Buttons)
	case event.TouchPayload:
		return s.p.PostTouch(e.Kind, p.X, p.Y, p.DX, p.DY, p.Velocity, int(p.Finger), p.Fingers)
	case event.AccelerationPayload:
		return s.p.PostAcceleration(e.Kind, p.X, p.Y, p.Z)
	}
	return false
}

func (r *Runner) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	r.log.Info(strings.Join(parts, "\t"))
	return 0
}
