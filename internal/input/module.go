package input

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/config"
	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
	"github.com/dshills/keystream/internal/input/session"
)

// Module owns an event stream and the translator feeding it.
type Module struct {
	id      uuid.UUID
	cfg     config.Config
	log     *zap.Logger
	clock   clock.Clock
	stream  *event.Stream
	sink    countingSink
	metrics *Metrics
	tr      Translator

	mu      sync.Mutex
	closers []io.Closer
	closed  atomic.Bool
}

// Option configures a Module.
type Option func(*options)

type options struct {
	factory Factory
	native  any
	logger  *zap.Logger
	clock   clock.Clock
	closers []io.Closer
}

// WithTranslator replaces the build-time translator.
func WithTranslator(f Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithNative passes a native collaborator to the translator factory: an
// x11.Display, win32.Cursor, macos.System, android.UnicodeResolver or
// tcell.Screen.
func WithNative(native any) Option {
	return func(o *options) {
		o.native = native
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the clock stamping events and timing gestures.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithCloser ties the lifetime of c to the module: Close closes it after
// the translator.
func WithCloser(c io.Closer) Option {
	return func(o *options) {
		if c != nil {
			o.closers = append(o.closers, c)
		}
	}
}

// New validates cfg, allocates the stream and builds the translator.
func New(cfg config.Config, opts ...Option) (*Module, error) {
	o := options{
		factory: defaultFactory,
		logger:  zap.NewNop(),
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Stage: "config", Err: err}
	}

	id := uuid.New()
	m := &Module{
		id:      id,
		cfg:     cfg,
		log:     o.logger.Named("input").With(zap.String("module", id.String())),
		clock:   o.clock,
		stream:  event.NewStream(cfg.Capacity(), event.WithClock(o.clock)),
		metrics: NewMetrics(o.clock),
		closers: o.closers,
	}
	m.sink = countingSink{stream: m.stream, metrics: m.metrics}

	tr, err := o.factory(m.Env(), o.native)
	if err != nil {
		return nil, &InitError{Stage: "translator", Platform: Platform, Err: err}
	}
	m.tr = tr
	m.log.Info("input ready",
		zap.String("translator", tr.Name()),
		zap.Int("capacity", m.stream.Cap()))
	return m, nil
}

// ID returns the session id assigned at construction.
func (m *Module) ID() uuid.UUID { return m.id }

// Config returns the configuration the module was built with.
func (m *Module) Config() config.Config { return m.cfg }

// Translator returns the active translator.
func (m *Module) Translator() Translator { return m.tr }

// Stream returns the event stream for draining.
func (m *Module) Stream() *event.Stream { return m.stream }

// Sink returns the sink translators post through. Producers outside the
// module, such as an evdev.Manager, use it so their events are counted.
func (m *Module) Sink() event.Sink { return m.sink }

// Env returns the collaborators translators are built with. Producers
// outside the module, such as an evdev.Manager, use it so their events are
// counted and stamped by the module's clock.
func (m *Module) Env() session.Env {
	return session.Env{Sink: m.sink, Clock: m.clock, Logger: m.log}
}

// Metrics returns the module's counters.
func (m *Module) Metrics() *Metrics { return m.metrics }

// Snapshot returns the counters together with the stream's drop count.
func (m *Module) Snapshot() MetricsSnapshot {
	snap := m.metrics.Snapshot()
	snap.Dropped = m.stream.Stats().Dropped
	return snap
}

// Health judges the pipeline against a Process latency threshold.
func (m *Module) Health(latencyThreshold time.Duration) HealthStatus {
	return healthCheck(m.Snapshot(), latencyThreshold)
}

// PostKey posts a KeyDown or KeyUp. For KindChar it posts a Char carrying
// rune(k). Other kinds are dropped.
func (m *Module) PostKey(kind event.Kind, k key.Key, scancode uint32, flags key.Modifier) bool {
	if m.closed.Load() {
		return false
	}
	if kind == event.KindChar {
		return m.sink.Post(event.NewChar(rune(k), scancode))
	}
	return m.sink.Post(event.NewKey(kind, k, scancode, flags))
}

// PostMouse posts a mouse event. Mismatched kinds and buttons outside the
// eight slots are dropped.
func (m *Module) PostMouse(kind event.Kind, x, y int, dx, dy, dz float64, button, buttons mouse.Button) bool {
	if m.closed.Load() {
		return false
	}
	return m.sink.Post(event.NewMouse(kind, event.MousePayload{
		X: x, Y: y, DX: dx, DY: dy, DZ: dz, Button: button, Buttons: buttons,
	}))
}

// PostTouch posts a touch event. Fingers outside slots 0-7 are dropped.
func (m *Module) PostTouch(kind event.Kind, x, y int, dx, dy, velocity float64, finger int, fingers uint8) bool {
	if m.closed.Load() || finger < 0 || finger >= event.MaxFingers {
		return false
	}
	return m.sink.Post(event.NewTouch(kind, event.TouchPayload{
		X: x, Y: y, DX: dx, DY: dy, Velocity: velocity, Finger: uint8(finger), Fingers: fingers,
	}))
}

// PostAcceleration posts an accelerometer sample.
func (m *Module) PostAcceleration(kind event.Kind, x, y, z float64) bool {
	if m.closed.Load() {
		return false
	}
	return m.sink.Post(event.Event{Kind: kind, Payload: event.AccelerationPayload{X: x, Y: y, Z: z}})
}

// Process runs one translator tick. Call it once per frame.
func (m *Module) Process() {
	if m.closed.Load() {
		return
	}
	timer := m.metrics.StartProcessTimer()
	m.tr.Process()
	timer.Stop()
}

// HandleNativeWindowEvent passes a native input event to the translator
// and reports whether it was consumed. Other window messages are ignored.
func (m *Module) HandleNativeWindowEvent(ev WindowEvent) bool {
	if m.closed.Load() || ev.Kind != WindowEventNative {
		return false
	}
	handled := m.tr.HandleNative(ev.Payload)
	m.metrics.RecordNative(handled)
	if !handled {
		m.log.Debug("native event ignored", zap.String("type", typeName(ev.Payload)))
	}
	return handled
}

// Close closes the translator and the attached closers. Later calls
// return nil. Unread events stay in the stream.
func (m *Module) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.mu.Lock()
	closers := m.closers
	m.closers = nil
	m.mu.Unlock()

	err := m.tr.Close()
	for i := len(closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, closers[i].Close())
	}
	snap := m.Snapshot()
	m.log.Info("input closed",
		zap.Uint64("posted", snap.PostedTotal),
		zap.Uint64("dropped", snap.Dropped),
		zap.Error(err))
	return err
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
