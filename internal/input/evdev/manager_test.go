//go:build linux

package evdev

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/session"
)

func waitForLen(t *testing.T, stream *event.Stream, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for stream.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("stream.Len() = %d after 5s, want %d", stream.Len(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func writeRecords(t *testing.T, path string, events ...InputEvent) {
	t.Helper()
	if err := os.WriteFile(path, encode(events...), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestManagerReadsAndFollowsDevices(t *testing.T) {
	dir := t.TempDir()
	// A regular file ends in EOF, which the manager treats as the
	// device going away: held keys are released.
	writeRecords(t, filepath.Join(dir, "event0"), rec(EvKey, 30, KeyPressed), syn())
	writeRecords(t, filepath.Join(dir, "mouse0"), rec(EvKey, 31, KeyPressed), syn())

	stream := event.NewStream(64)
	m := NewManager(session.Env{Sink: stream, Logger: zaptest.NewLogger(t)}, Config{Dir: dir})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	waitForLen(t, stream, 3)
	got := stream.Drain(nil)
	kinds := []event.Kind{event.KindKeyDown, event.KindChar, event.KindKeyUp}
	for i, e := range got {
		if e.Kind != kinds[i] {
			t.Errorf("event %d kind = %v, want %v", i, e.Kind, kinds[i])
		}
	}

	pending := filepath.Join(dir, "pending")
	writeRecords(t, pending, rec(EvRel, RelX, 7), syn())
	if err := os.Rename(pending, filepath.Join(dir, "event1")); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	waitForLen(t, stream, 1)
	if e, _ := stream.Next(); e.Kind != event.KindMouseMove {
		t.Errorf("hotplugged device posted %v, want MouseMove", e.Kind)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if n := len(m.Devices()); n != 0 {
		t.Errorf("Devices() after Run = %d, want 0", n)
	}
}

func TestManagerMissingDir(t *testing.T) {
	m := NewManager(session.Env{}, Config{Dir: filepath.Join(t.TempDir(), "missing")})
	if err := m.Run(context.Background()); err == nil {
		t.Error("Run() on a missing directory succeeded")
	}
}

func TestOpenDeviceMissing(t *testing.T) {
	_, _, err := openDevice(filepath.Join(t.TempDir(), "event9"), false)
	var de *DeviceError
	if !errors.As(err, &de) || de.Op != "open" {
		t.Errorf("openDevice() error = %v, want open DeviceError", err)
	}
}
