package event

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/mouse"
)

var ignoreStamp = cmpopts.IgnoreFields(Event{}, "Seq", "Time")

func TestNewStreamCapacity(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultCapacity},
		{-5, DefaultCapacity},
		{16, 16},
	}

	for _, tt := range tests {
		if got := NewStream(tt.in).Cap(); got != tt.want {
			t.Errorf("NewStream(%d).Cap() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStreamFIFO(t *testing.T) {
	s := NewStream(8)
	want := []Event{
		NewKey(KindKeyDown, key.KeyA, 0x1e, key.ModNone),
		NewChar('a', 0x1e),
		NewKey(KindKeyUp, key.KeyA, 0x1e, key.ModNone),
		NewMouse(KindMouseMove, MousePayload{X: 3, Y: 4, DX: 1, DY: 1}),
	}
	for _, e := range want {
		if !s.Post(e) {
			t.Fatalf("Post(%v) = false", e)
		}
	}

	if got := s.Len(); got != len(want) {
		t.Errorf("Len() = %d, want %d", got, len(want))
	}

	got := s.Drain(nil)
	if diff := cmp.Diff(want, got, ignoreStamp); diff != "" {
		t.Errorf("Drain() mismatch (-want +got):\n%s", diff)
	}
	for i, e := range got {
		if e.Seq != uint64(i) {
			t.Errorf("event %d Seq = %d, want %d", i, e.Seq, i)
		}
	}
}

func TestStreamDrainIsDestructive(t *testing.T) {
	s := NewStream(4)
	s.Post(NewChar('x', 0))

	if got := s.Drain(nil); len(got) != 1 {
		t.Fatalf("first Drain() returned %d events, want 1", len(got))
	}
	if got := s.Drain(nil); len(got) != 0 {
		t.Errorf("second Drain() returned %d events, want 0", len(got))
	}
	if _, ok := s.Next(); ok {
		t.Error("Next() on empty stream returned an event")
	}
}

func TestStreamOverflowKeepsNewest(t *testing.T) {
	s := NewStream(DefaultCapacity)
	for i := 0; i <= DefaultCapacity; i++ {
		s.Post(NewMouse(KindMouseMove, MousePayload{X: i}))
	}

	if got := s.Len(); got != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", got, DefaultCapacity)
	}

	got := s.Drain(nil)
	if len(got) != DefaultCapacity {
		t.Fatalf("Drain() returned %d events, want %d", len(got), DefaultCapacity)
	}
	if got[0].Seq != 1 {
		t.Errorf("oldest surviving Seq = %d, want 1", got[0].Seq)
	}
	if p, _ := got[len(got)-1].Mouse(); p.X != DefaultCapacity {
		t.Errorf("newest X = %d, want %d", p.X, DefaultCapacity)
	}

	stats := s.Stats()
	if stats.Posted != DefaultCapacity+1 {
		t.Errorf("Posted = %d, want %d", stats.Posted, DefaultCapacity+1)
	}
	if stats.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", stats.Dropped)
	}
}

func TestStreamRejectsMismatchedPayload(t *testing.T) {
	s := NewStream(4)
	tests := []Event{
		{Kind: KindKeyDown, Payload: CharPayload{Rune: 'a'}},
		{Kind: KindChar},
		{Kind: KindTouchBegin, Payload: TouchPayload{Finger: 8}},
		{Kind: KindMouseDown, Payload: MousePayload{Button: mouse.ButtonLeft | mouse.ButtonRight}},
		{Kind: KindMouseMove, Payload: MousePayload{Button: mouse.ButtonLeft}},
		{Kind: 99, Payload: AccelerationPayload{}},
	}

	for _, e := range tests {
		if s.Post(e) {
			t.Errorf("Post(%v) = true, want false", e)
		}
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if got := s.Stats().Rejected; got != uint64(len(tests)) {
		t.Errorf("Rejected = %d, want %d", got, len(tests))
	}
}

func TestStreamTimestamps(t *testing.T) {
	mock := clock.NewMock()
	s := NewStream(4, WithClock(mock))

	s.Post(NewChar('a', 0))
	mock.Add(250 * time.Millisecond)
	s.Post(NewChar('b', 0))

	got := s.Drain(nil)
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d events, want 2", len(got))
	}
	if d := got[1].Time.Sub(got[0].Time); d != 250*time.Millisecond {
		t.Errorf("time between events = %v, want 250ms", d)
	}
}

func TestStreamReset(t *testing.T) {
	s := NewStream(4)
	s.Post(NewChar('a', 0))
	s.Post(NewChar('b', 0))
	s.Reset()

	if got := s.Len(); got != 0 {
		t.Errorf("Len() after Reset = %d, want 0", got)
	}
	s.Post(NewChar('c', 0))
	got := s.Drain(nil)
	if len(got) != 1 {
		t.Fatalf("Drain() returned %d events, want 1", len(got))
	}
	if c, _ := got[0].Char(); c.Rune != 'c' {
		t.Errorf("Rune = %q, want 'c'", c.Rune)
	}
}

func TestStreamConcurrentProducers(t *testing.T) {
	const producers, perProducer = 8, 100
	s := NewStream(producers * perProducer)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Post(NewTouch(KindTouchMove, TouchPayload{X: i, Finger: uint8(p)}))
			}
		}(p)
	}
	wg.Wait()

	got := s.Drain(nil)
	if len(got) != producers*perProducer {
		t.Fatalf("Drain() returned %d events, want %d", len(got), producers*perProducer)
	}

	last := make(map[uint8]int)
	for i, e := range got {
		if e.Seq != uint64(i) {
			t.Fatalf("event %d Seq = %d, want %d", i, e.Seq, i)
		}
		tp, _ := e.Touch()
		if prev, ok := last[tp.Finger]; ok && tp.X != prev+1 {
			t.Errorf("producer %d order broken: %d after %d", tp.Finger, tp.X, prev)
		}
		last[tp.Finger] = tp.X
	}
}

func TestStreamConcurrentOverflowAccounting(t *testing.T) {
	const producers, perProducer = 4, 2000
	s := NewStream(64)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Post(NewAcceleration(float64(i), 0, 0))
			}
		}()
	}

	done := make(chan struct{})
	var read uint64
	go func() {
		defer close(done)
		var buf []Event
		for {
			buf = s.Drain(buf[:0])
			read += uint64(len(buf))
			if s.Stats().Posted == producers*perProducer && s.Len() == 0 {
				return
			}
		}
	}()

	wg.Wait()
	<-done
	read += uint64(len(s.Drain(nil)))

	stats := s.Stats()
	if stats.Posted != producers*perProducer {
		t.Errorf("Posted = %d, want %d", stats.Posted, producers*perProducer)
	}
	if read+stats.Dropped != stats.Posted {
		t.Errorf("read %d + dropped %d != posted %d", read, stats.Dropped, stats.Posted)
	}
}
