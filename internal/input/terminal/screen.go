package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Open creates and initializes a terminal screen with mouse, bracketed
// paste and focus reporting enabled.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	Enable(screen)
	return screen, nil
}

// Enable turns on the input reports the translator understands.
func Enable(screen tcell.Screen) {
	screen.EnableMouse()
	screen.EnablePaste()
	screen.EnableFocus()
}
