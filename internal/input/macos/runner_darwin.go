//go:build darwin && !ios && cgo

package macos

/*
#cgo darwin LDFLAGS: -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <dispatch/dispatch.h>
#include <pthread.h>
#include <stdint.h>

extern void ksRunHandle(uintptr_t h);

static void ksTrampoline(void *ctx) {
	ksRunHandle((uintptr_t)ctx);
}

static void ksDispatchMain(uintptr_t h) {
	dispatch_sync_f(dispatch_get_main_queue(), (void *)h, ksTrampoline);
}

static int ksIsMainThread(void) {
	return pthread_main_np();
}

static void ksRunLoopOnce(double seconds) {
	CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, true);
}
*/
import "C"

import (
	"runtime/cgo"
	"time"
)

// MainQueue runs functions synchronously on the main dispatch queue. A
// call made on the main thread runs inline, since waiting on the queue
// from its own thread would never return.
//
// Something must service the main queue: an AppKit run loop, or RunMainLoop
// in programs without one.
var MainQueue Runner = RunnerFunc(syncMain)

func syncMain(fn func()) {
	if OnMainThread() {
		fn()
		return
	}
	h := cgo.NewHandle(fn)
	defer h.Delete()
	C.ksDispatchMain(C.uintptr_t(h))
}

//export ksRunHandle
func ksRunHandle(h C.uintptr_t) {
	cgo.Handle(h).Value().(func())()
}

// OnMainThread reports whether the caller runs on the process main thread.
func OnMainThread() bool {
	return C.ksIsMainThread() != 0
}

// runLoopSlice bounds one pass of RunMainLoop.
const runLoopSlice = 50 * time.Millisecond

// RunMainLoop services the main run loop, and with it MainQueue, until
// stop is closed. It must be called on the main thread: lock the main
// goroutine with runtime.LockOSThread from an init function.
func RunMainLoop(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		C.ksRunLoopOnce(C.double(runLoopSlice.Seconds()))
	}
}
