package evdev

import "errors"

var (
	// ErrShortRecord is returned when fewer bytes than one input_event
	// record remain.
	ErrShortRecord = errors.New("evdev: short input_event record")

	// ErrUnsupported is returned by Manager on systems without evdev.
	ErrUnsupported = errors.New("evdev: not supported on this platform")
)

// DeviceError records a failure to use one device.
type DeviceError struct {
	// Path is the device node.
	Path string

	// Op is the failed operation: "open", "grab" or "read".
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	return "evdev: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *DeviceError) Unwrap() error {
	return e.Err
}
