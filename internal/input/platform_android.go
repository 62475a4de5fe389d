//go:build android

package input

import (
	"github.com/dshills/keystream/internal/input/android"
	"github.com/dshills/keystream/internal/input/session"
)

// Platform names the build-time translator.
const Platform = "android"

func defaultFactory(env session.Env, native any) (Translator, error) {
	resolver, ok := native.(android.UnicodeResolver)
	if !ok {
		resolver = android.DefaultResolver()
	}
	return android.New(env, resolver), nil
}
