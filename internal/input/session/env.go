package session

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/event"
)

// Env carries the collaborators shared by every translator.
type Env struct {
	Sink   event.Sink
	Clock  clock.Clock
	Logger *zap.Logger
}

// WithDefaults fills unset collaborators. A nil sink is replaced by a
// sink that discards everything.
func (e Env) WithDefaults() Env {
	if e.Sink == nil {
		e.Sink = discard{}
	}
	if e.Clock == nil {
		e.Clock = clock.New()
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	return e
}

// Named returns a copy of e whose logger is named for a translator.
func (e Env) Named(name string) Env {
	e = e.WithDefaults()
	e.Logger = e.Logger.Named(name)
	return e
}

type discard struct{}

func (discard) Post(event.Event) bool { return false }
