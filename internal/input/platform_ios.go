//go:build ios

package input

import (
	"github.com/dshills/keystream/internal/input/mobile"
	"github.com/dshills/keystream/internal/input/session"
)

// Platform names the build-time translator.
const Platform = "mobile"

func defaultFactory(env session.Env, _ any) (Translator, error) {
	return mobile.New(env), nil
}
