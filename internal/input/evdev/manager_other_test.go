//go:build !linux

package evdev

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/keystream/internal/input/session"
)

func TestManagerUnsupported(t *testing.T) {
	m := NewManager(session.Env{}, Config{})
	if err := m.Run(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Run() error = %v, want ErrUnsupported", err)
	}
}
