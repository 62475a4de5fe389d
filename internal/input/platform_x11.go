//go:build linux && !android

package input

import (
	"github.com/dshills/keystream/internal/input/session"
	"github.com/dshills/keystream/internal/input/x11"
)

// Platform names the build-time translator.
const Platform = "x11"

func defaultFactory(env session.Env, native any) (Translator, error) {
	display, _ := native.(x11.Display)
	tr, err := x11.New(env, display)
	if err != nil {
		return nil, err
	}
	return tr, nil
}
