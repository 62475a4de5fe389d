//go:build darwin && !ios && cgo

package macos

/*
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Carbon -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <Carbon/Carbon.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

static int ksKeyState(uint16_t code) {
	return CGEventSourceKeyState(kCGEventSourceStateCombinedSessionState, (CGKeyCode)code) ? 1 : 0;
}

static int ksButtonState(int button) {
	return CGEventSourceButtonState(kCGEventSourceStateCombinedSessionState, (CGMouseButton)button) ? 1 : 0;
}

static uint64_t ksFlags(void) {
	return (uint64_t)CGEventSourceFlagsState(kCGEventSourceStateCombinedSessionState);
}

static void ksCursor(double *x, double *y) {
	CGEventRef ev = CGEventCreate(NULL);
	CGPoint loc = CGEventGetLocation(ev);
	CFRelease(ev);
	*x = loc.x;
	*y = loc.y;
}

static void *ksCopyLayoutSource(void) {
	return (void *)TISCopyCurrentKeyboardLayoutInputSource();
}

static void ksRelease(void *ref) {
	if (ref != NULL) {
		CFRelease((CFTypeRef)ref);
	}
}

static const void *ksLayoutData(void *src) {
	CFDataRef data = (CFDataRef)TISGetInputSourceProperty((TISInputSourceRef)src, kTISPropertyUnicodeKeyLayoutData);
	return data ? (const void *)CFDataGetBytePtr(data) : NULL;
}

static int ksLayoutID(void *src, char *buf, int size) {
	CFStringRef id = (CFStringRef)TISGetInputSourceProperty((TISInputSourceRef)src, kTISPropertyInputSourceID);
	if (id == NULL) {
		return 0;
	}
	return CFStringGetCString(id, buf, size, kCFStringEncodingUTF8) ? 1 : 0;
}

static int ksTranslate(const void *layout, uint16_t code, uint32_t mods, uint32_t *dead, uint16_t *out, int max) {
	UniCharCount len = 0;
	OSStatus err = UCKeyTranslate((const UCKeyboardLayout *)layout, code, kUCKeyActionDown, mods,
	                              LMGetKbdType(), 0, (UInt32 *)dead, (UniCharCount)max, &len, (UniChar *)out);
	if (err != noErr) {
		return 0;
	}
	return (int)len;
}
*/
import "C"

import (
	"unicode/utf16"
	"unsafe"
)

type quartzSystem struct {
	current *uchrLayout
}

// SystemDefault returns the System backed by Quartz event source state and
// the Text Input Sources keyboard layout.
func SystemDefault() (System, error) {
	return &quartzSystem{}, nil
}

func (s *quartzSystem) Layout() Layout {
	src := C.ksCopyLayoutSource()
	if src == nil {
		return nil
	}
	var buf [256]C.char
	id := ""
	if C.ksLayoutID(src, &buf[0], C.int(len(buf))) != 0 {
		id = C.GoString(&buf[0])
	}
	if s.current != nil && s.current.id == id {
		C.ksRelease(src)
		return s.current
	}

	data := C.ksLayoutData(src)
	if data == nil {
		C.ksRelease(src)
		return nil
	}
	if s.current != nil {
		C.ksRelease(s.current.src)
	}
	// The layout data is owned by src, which stays retained while current.
	s.current = &uchrLayout{src: src, data: data, id: id}
	return s.current
}

func (s *quartzSystem) KeyState(keycode uint16) bool {
	return C.ksKeyState(C.uint16_t(keycode)) != 0
}

func (s *quartzSystem) ButtonState(button int) bool {
	return C.ksButtonState(C.int(button)) != 0
}

func (s *quartzSystem) CursorLocation() (x, y float64) {
	var cx, cy C.double
	C.ksCursor(&cx, &cy)
	return float64(cx), float64(cy)
}

func (s *quartzSystem) Flags() uint64 {
	return uint64(C.ksFlags())
}

type uchrLayout struct {
	src  unsafe.Pointer
	data unsafe.Pointer
	id   string
}

func (l *uchrLayout) ID() string { return l.id }

func (l *uchrLayout) Translate(keycode uint16, modifiers uint32, dead *uint32) []rune {
	var out [4]C.uint16_t
	state := C.uint32_t(*dead)
	n := C.ksTranslate(l.data, C.uint16_t(keycode), C.uint32_t(modifiers), &state, &out[0], C.int(len(out)))
	*dead = uint32(state)

	units := make([]uint16, int(n))
	for i := range units {
		units[i] = uint16(out[i])
	}
	return utf16.Decode(units)
}
