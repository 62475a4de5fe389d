//go:build darwin && !ios && !cgo

package macos

// MainQueue runs inline without cgo; callers must pump from the main
// thread themselves.
var MainQueue Runner = Inline
