//go:build !linux

package evdev

const supported = false

func openDevice(path string, grab bool) (source, string, error) {
	return nil, "", &DeviceError{Path: path, Op: "open", Err: ErrUnsupported}
}
