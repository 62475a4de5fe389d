package event

import (
	"sync/atomic"

	"github.com/benbjohnson/clock"
)

// DefaultCapacity is the number of slots in a stream built with capacity <= 0.
const DefaultCapacity = 1024

// Sink receives normalized events. Translators and session trackers write
// to a Sink; Stream is the production implementation.
type Sink interface {
	Post(e Event) bool
}

// Stats holds stream counters.
type Stats struct {
	// Posted counts accepted events.
	Posted uint64

	// Dropped counts events overwritten before they were read.
	Dropped uint64

	// Rejected counts events refused because their payload did not match
	// their kind.
	Rejected uint64
}

// Stream is a fixed-capacity ring of events. Any number of goroutines may
// post concurrently; a single goroutine drains. When the ring is full the
// oldest unread event is overwritten and counted as dropped.
type Stream struct {
	slots []atomic.Pointer[Event]
	size  uint64
	clock clock.Clock

	// head is the next sequence to reserve, tail the next to read.
	head atomic.Uint64
	tail atomic.Uint64

	posted   atomic.Uint64
	dropped  atomic.Uint64
	rejected atomic.Uint64
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithClock sets the clock used to stamp Event.Time.
func WithClock(c clock.Clock) StreamOption {
	return func(s *Stream) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewStream creates a stream with the given capacity.
func NewStream(capacity int, opts ...StreamOption) *Stream {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Stream{
		slots: make([]atomic.Pointer[Event], capacity),
		size:  uint64(capacity),
		clock: clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post appends e, stamping its sequence number and time. It never blocks.
// It returns false only when e is malformed.
func (s *Stream) Post(e Event) bool {
	if !e.Valid() {
		s.rejected.Add(1)
		return false
	}

	seq := s.head.Add(1) - 1
	e.Seq = seq
	e.Time = s.clock.Now()
	slot := &s.slots[seq%s.size]

	for {
		old := slot.Load()
		if old != nil && old.Seq > seq {
			// A writer one lap ahead already claimed the slot. The reader
			// counts the loss when it skips this sequence.
			break
		}
		if slot.CompareAndSwap(old, &e) {
			break
		}
	}
	s.posted.Add(1)
	return true
}

// Next removes and returns the oldest unread event.
func (s *Stream) Next() (Event, bool) {
	for {
		tail := s.tail.Load()
		head := s.head.Load()
		if tail >= head {
			return Event{}, false
		}
		if head-tail > s.size {
			s.dropped.Add(head - s.size - tail)
			tail = head - s.size
			s.tail.Store(tail)
		}

		p := s.slots[tail%s.size].Load()
		if p == nil || p.Seq < tail {
			// Reserved but not yet published.
			return Event{}, false
		}
		if p.Seq > tail {
			s.dropped.Add(1)
			s.tail.Store(tail + 1)
			continue
		}
		s.tail.Store(tail + 1)
		return *p, true
	}
}

// Drain appends every unread event to dst in post order and returns it.
func (s *Stream) Drain(dst []Event) []Event {
	for {
		e, ok := s.Next()
		if !ok {
			return dst
		}
		dst = append(dst, e)
	}
}

// Len returns the number of unread events.
func (s *Stream) Len() int {
	head, tail := s.head.Load(), s.tail.Load()
	if tail >= head {
		return 0
	}
	if n := head - tail; n < s.size {
		return int(n)
	}
	return int(s.size)
}

// Cap returns the ring capacity.
func (s *Stream) Cap() int {
	return int(s.size)
}

// Stats returns a snapshot of the stream counters.
func (s *Stream) Stats() Stats {
	return Stats{
		Posted:   s.posted.Load(),
		Dropped:  s.dropped.Load(),
		Rejected: s.rejected.Load(),
	}
}

// Reset discards every unread event. It must be called from the reading
// goroutine.
func (s *Stream) Reset() {
	s.tail.Store(s.head.Load())
}
