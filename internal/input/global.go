package input

import (
	"sync"

	"github.com/dshills/keystream/internal/config"
	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
)

var (
	globalMu sync.RWMutex
	global   *Module
)

// Initialize builds the process-wide module. A second call while one is
// active does nothing.
func Initialize(cfg config.Config, opts ...Option) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return nil
	}
	m, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	global = m
	return nil
}

// Finalize closes the process-wide module. Without one it does nothing.
func Finalize() error {
	globalMu.Lock()
	m := global
	global = nil
	globalMu.Unlock()
	if m == nil {
		return nil
	}
	return m.Close()
}

// Default returns the process-wide module, or nil before Initialize.
func Default() *Module {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// EventStream returns the process-wide stream, or nil before Initialize.
func EventStream() *event.Stream {
	if m := Default(); m != nil {
		return m.Stream()
	}
	return nil
}

// PostKey posts to the process-wide module.
func PostKey(kind event.Kind, k key.Key, scancode uint32, flags key.Modifier) bool {
	if m := Default(); m != nil {
		return m.PostKey(kind, k, scancode, flags)
	}
	return false
}

// PostMouse posts to the process-wide module.
func PostMouse(kind event.Kind, x, y int, dx, dy, dz float64, button, buttons mouse.Button) bool {
	if m := Default(); m != nil {
		return m.PostMouse(kind, x, y, dx, dy, dz, button, buttons)
	}
	return false
}

// PostTouch posts to the process-wide module.
func PostTouch(kind event.Kind, x, y int, dx, dy, velocity float64, finger int, fingers uint8) bool {
	if m := Default(); m != nil {
		return m.PostTouch(kind, x, y, dx, dy, velocity, finger, fingers)
	}
	return false
}

// PostAcceleration posts to the process-wide module.
func PostAcceleration(kind event.Kind, x, y, z float64) bool {
	if m := Default(); m != nil {
		return m.PostAcceleration(kind, x, y, z)
	}
	return false
}

// Process pumps the process-wide module.
func Process() {
	if m := Default(); m != nil {
		m.Process()
	}
}

// HandleNativeWindowEvent forwards to the process-wide module.
func HandleNativeWindowEvent(ev WindowEvent) bool {
	if m := Default(); m != nil {
		return m.HandleNativeWindowEvent(ev)
	}
	return false
}
