package evdev

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keystream/internal/input/session"
)

// DefaultDir is where device nodes appear.
const DefaultDir = "/dev/input"

// Config controls device discovery.
type Config struct {
	// Dir is scanned for event* nodes. Empty means DefaultDir.
	Dir string

	// Grab requests exclusive access so other clients stop seeing the
	// devices' events.
	Grab bool
}

// Device describes one open device.
type Device struct {
	Path string
	Name string
}

// Manager opens every input device under a directory and translates
// their records into one sink. Devices added later are picked up through
// directory notifications.
type Manager struct {
	env session.Env
	cfg Config
	log *zap.Logger

	mu      sync.Mutex
	devices map[string]*device
}

type device struct {
	Device
	src  source
	tr   *Translator
	once sync.Once
}

// close closes the node once; later calls return nil.
func (d *device) close() error {
	var err error
	d.once.Do(func() { err = d.src.Close() })
	return err
}

// source is an open device node.
type source interface {
	Read(p []byte) (int, error)
	Close() error
}

// NewManager creates a manager. Run starts it.
func NewManager(env session.Env, cfg Config) *Manager {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	env = env.WithDefaults()
	return &Manager{
		env:     env,
		cfg:     cfg,
		log:     env.Logger.Named("evdev"),
		devices: make(map[string]*device),
	}
}

// Devices lists the open devices.
func (m *Manager) Devices() []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Device, 0, len(m.devices))
	for _, d := range m.devices {
		out = append(out, d.Device)
	}
	return out
}

// Close closes every open device, which ends their readers.
func (m *Manager) Close() error {
	m.mu.Lock()
	devices := m.devices
	m.devices = make(map[string]*device)
	m.mu.Unlock()

	var err error
	for _, d := range devices {
		err = multierr.Append(err, d.close())
	}
	return err
}

// add registers an opened device unless the path is already open.
func (m *Manager) add(d *device) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.devices[d.Path]; ok {
		return false
	}
	m.devices[d.Path] = d
	return true
}

func (m *Manager) remove(d *device) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.devices[d.Path] == d {
		delete(m.devices, d.Path)
	}
}

func (m *Manager) isOpen(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.devices[path]
	return ok
}

func isEventNode(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "event")
}

// Run opens the devices present under the directory, then follows the
// directory for new nodes until ctx is done. Devices that cannot be
// opened are logged and skipped. Run closes every device before it
// returns.
func (m *Manager) Run(ctx context.Context) error {
	if !supported {
		return ErrUnsupported
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("evdev: create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(m.cfg.Dir); err != nil {
		return fmt.Errorf("evdev: watch %s: %w", m.cfg.Dir, err)
	}

	paths, err := filepath.Glob(filepath.Join(m.cfg.Dir, "event*"))
	if err != nil {
		return fmt.Errorf("evdev: scan %s: %w", m.cfg.Dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		m.start(g, path)
	}

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return m.Close()
			case ev, ok := <-watcher.Events:
				if !ok {
					return m.Close()
				}
				// udev may create the node before granting access to
				// it, so permission changes retry the open.
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Chmod) {
					m.start(g, ev.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return m.Close()
				}
				m.log.Warn("watch error", zap.Error(err))
			}
		}
	})
	return g.Wait()
}

func (m *Manager) start(g *errgroup.Group, path string) {
	if !isEventNode(path) || m.isOpen(path) {
		return
	}
	src, name, err := openDevice(path, m.cfg.Grab)
	if err != nil {
		m.log.Warn("skipping device", zap.Error(err))
		return
	}

	env := m.env
	env.Logger = m.env.Logger.With(zap.String("device", path))
	d := &device{Device: Device{Path: path, Name: name}, src: src, tr: New(env)}
	if !m.add(d) {
		d.close()
		return
	}
	m.log.Info("device opened", zap.String("path", path), zap.String("name", name))
	g.Go(func() error {
		m.read(d)
		return nil
	})
}

// read translates records until the node fails or is closed.
func (m *Manager) read(d *device) {
	r := bufio.NewReaderSize(d.src, EventSize*64)
	rec := make([]byte, EventSize)
	for {
		if _, err := io.ReadFull(r, rec); err != nil {
			m.remove(d)
			d.close()
			d.tr.Close()
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				m.log.Info("device gone", zap.Error(&DeviceError{Path: d.Path, Op: "read", Err: err}))
			}
			return
		}
		ev, _ := Decode(rec)
		d.tr.HandleNative(ev)
	}
}
