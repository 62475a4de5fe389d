package evdev

import (
	"bytes"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

const supported = true

// ioctl requests from linux/input.h.
const (
	eviocgrab  = 0x40044590
	eviocgname = 0x80ff4506 // EVIOCGNAME(255)
)

// openDevice opens a node for reading through the runtime poller, so
// closing it unblocks a pending read. The name falls back to the file
// name for nodes that do not answer EVIOCGNAME.
func openDevice(path string, grab bool) (source, string, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, "", &DeviceError{Path: path, Op: "open", Err: err}
	}
	rc, err := f.SyscallConn()
	if err != nil {
		f.Close()
		return nil, "", &DeviceError{Path: path, Op: "open", Err: err}
	}

	name := filepath.Base(path)
	var grabErr error
	err = rc.Control(func(fd uintptr) {
		buf := make([]byte, 255)
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, eviocgname, uintptr(unsafe.Pointer(&buf[0])))
		if errno == 0 {
			if n := bytes.IndexByte(buf, 0); n > 0 {
				name = string(buf[:n])
			}
		}
		if grab {
			grabErr = unix.IoctlSetInt(int(fd), eviocgrab, 1)
		}
	})
	if err == nil {
		err = grabErr
	}
	if err != nil {
		f.Close()
		return nil, "", &DeviceError{Path: path, Op: "grab", Err: err}
	}
	return f, name, nil
}
