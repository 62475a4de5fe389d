// Package terminal translates tcell terminal events into normalized input
// events.
//
// Terminals report key presses only, so every key event becomes a
// KeyDown/KeyUp pair with the text in between. Physical keys are not
// visible: a key id names the character the terminal delivered, folded to
// the US key that types it where possible. Mouse buttons arrive as a mask
// that is diffed against the previous report.
package terminal
