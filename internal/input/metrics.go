package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dshills/keystream/internal/input/event"
)

// kindSlots covers every event.Kind value.
const kindSlots = 16

// Metrics tracks dispatch activity.
type Metrics struct {
	// Event counters
	posted        [kindSlots]atomic.Uint64
	rejected      atomic.Uint64
	nativeHandled atomic.Uint64
	nativeIgnored atomic.Uint64
	processCalls  atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	processLatencies  []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakProcessLatency atomic.Int64

	clock     clock.Clock
	startTime time.Time

	enabled atomic.Bool
}

// NewMetrics creates a metrics tracker timed by clk.
func NewMetrics(clk clock.Clock) *Metrics {
	if clk == nil {
		clk = clock.New()
	}
	m := &Metrics{
		processLatencies:  make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		clock:             clk,
		startTime:         clk.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordPost records one post attempt. Rejected posts are counted
// separately from their kind.
func (m *Metrics) RecordPost(kind event.Kind, accepted bool) {
	if !m.enabled.Load() {
		return
	}
	if !accepted || int(kind) >= kindSlots {
		m.rejected.Add(1)
		return
	}
	m.posted[kind].Add(1)
}

// RecordNative records whether a native event was consumed.
func (m *Metrics) RecordNative(handled bool) {
	if !m.enabled.Load() {
		return
	}
	if handled {
		m.nativeHandled.Add(1)
	} else {
		m.nativeIgnored.Add(1)
	}
}

// RecordProcess records one Process call and its duration.
func (m *Metrics) RecordProcess(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.processCalls.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakProcessLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakProcessLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.processLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// Posted returns the number of accepted events of kind.
func (m *Metrics) Posted(kind event.Kind) uint64 {
	if int(kind) >= kindSlots {
		return 0
	}
	return m.posted[kind].Load()
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	Posted        map[event.Kind]uint64
	PostedTotal   uint64
	Rejected      uint64
	Dropped       uint64
	NativeHandled uint64
	NativeIgnored uint64
	ProcessCalls  uint64

	// Latency stats
	AvgProcessLatency  time.Duration
	MaxProcessLatency  time.Duration
	P99ProcessLatency  time.Duration
	PeakProcessLatency time.Duration

	// Rates
	EventsPerSecond float64

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics. Dropped is filled
// in by Module.Snapshot, which owns the stream.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.processLatencies))
	copy(latencies, m.processLatencies)
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		Posted:             make(map[event.Kind]uint64),
		Rejected:           m.rejected.Load(),
		NativeHandled:      m.nativeHandled.Load(),
		NativeIgnored:      m.nativeIgnored.Load(),
		ProcessCalls:       m.processCalls.Load(),
		PeakProcessLatency: time.Duration(m.peakProcessLatency.Load()),
		Uptime:             m.clock.Since(m.startTime),
	}
	for kind := range m.posted {
		if n := m.posted[kind].Load(); n > 0 {
			snap.Posted[event.Kind(kind)] = n
			snap.PostedTotal += n
		}
	}

	if snap.Uptime > 0 {
		snap.EventsPerSecond = float64(snap.PostedTotal) / snap.Uptime.Seconds()
	}
	snap.AvgProcessLatency, snap.MaxProcessLatency, snap.P99ProcessLatency = calculateLatencyStats(latencies)

	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}

	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
		if l > maxLat {
			maxLat = l
		}
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for i := range m.posted {
		m.posted[i].Store(0)
	}
	m.rejected.Store(0)
	m.nativeHandled.Store(0)
	m.nativeIgnored.Store(0)
	m.processCalls.Store(0)
	m.peakProcessLatency.Store(0)

	m.mu.Lock()
	m.processLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = m.clock.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health of the input pipeline.
type HealthStatus struct {
	Healthy          bool
	DroppedEvents    uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// healthCheck judges a snapshot against a Process latency threshold.
func healthCheck(snap MetricsSnapshot, latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		DroppedEvents:    snap.Dropped,
		PeakLatency:      snap.PeakProcessLatency,
		LatencyThreshold: latencyThreshold,
	}

	if status.DroppedEvents > 0 {
		status.Healthy = false
		status.Message = "dropped events detected"
	} else if status.PeakLatency > latencyThreshold {
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	} else {
		status.Message = "healthy"
	}

	return status
}

// Timer measures one Process call.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// StartProcessTimer starts a timer for a Process call.
func (m *Metrics) StartProcessTimer() *Timer {
	return &Timer{
		start:   m.clock.Now(),
		metrics: m,
	}
}

// Stop stops the timer and records the Process latency.
func (t *Timer) Stop() time.Duration {
	elapsed := t.metrics.clock.Since(t.start)
	t.metrics.RecordProcess(elapsed)
	return elapsed
}

// countingSink posts into the stream and records the outcome.
type countingSink struct {
	stream  *event.Stream
	metrics *Metrics
}

func (s countingSink) Post(e event.Event) bool {
	ok := s.stream.Post(e)
	s.metrics.RecordPost(e.Kind, ok)
	return ok
}
