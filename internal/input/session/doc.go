// Package session holds the per-translator input state shared by every
// platform backend: held mouse buttons, active touch contacts, and the key
// down table used to pair key presses with releases.
//
// Trackers are not safe for concurrent use. Each translator owns its
// trackers and drives them from the goroutine that pumps native events.
package session
