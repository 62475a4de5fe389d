//go:build windows

package input

import (
	"go.uber.org/zap"

	"github.com/dshills/keystream/internal/input/session"
	"github.com/dshills/keystream/internal/input/win32"
)

// Platform names the build-time translator.
const Platform = "win32"

func defaultFactory(env session.Env, native any) (Translator, error) {
	cursor, ok := native.(win32.Cursor)
	if !ok {
		c, err := win32.SystemCursor()
		if err != nil {
			env.Logger.Warn("accumulating raw mouse deltas", zap.Error(err))
		}
		cursor = c
	}
	return win32.New(env, cursor), nil
}
