//go:build darwin && !ios && !cgo

package macos

import "fmt"

// SystemDefault needs cgo to reach the Quartz event source.
func SystemDefault() (System, error) {
	return nil, fmt.Errorf("%w: built without cgo", ErrNoSystem)
}
