//go:build darwin && !ios

package input

import (
	"github.com/dshills/keystream/internal/input/macos"
	"github.com/dshills/keystream/internal/input/session"
)

// Platform names the build-time translator.
const Platform = "macos"

// defaultFactory samples on the main dispatch queue unless the native
// value also implements macos.Runner.
func defaultFactory(env session.Env, native any) (Translator, error) {
	sys, ok := native.(macos.System)
	if !ok {
		var err error
		if sys, err = macos.SystemDefault(); err != nil {
			return nil, err
		}
	}
	runner, ok := native.(macos.Runner)
	if !ok {
		runner = macos.MainQueue
	}
	tr, err := macos.New(env, sys, runner)
	if err != nil {
		return nil, err
	}
	return tr, nil
}
