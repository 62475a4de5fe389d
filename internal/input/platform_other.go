//go:build !linux && !windows && !darwin

package input

// Platform names the build-time translator.
const Platform = "terminal"

var defaultFactory Factory = Terminal
