// Package input is the dispatch entry point of keystream.
//
// A Module owns one event stream and one platform translator. Native
// window layers hand raw events to HandleNativeWindowEvent, polling
// platforms are pumped by Process, and test harnesses or synthetic input
// generators inject records through the Post functions. Applications
// drain the stream once per frame:
//
//	if err := input.Initialize(config.Default(), input.WithNative(display)); err != nil {
//	    return err
//	}
//	defer input.Finalize()
//
//	var events []event.Event
//	for running {
//	    input.Process()
//	    events = input.EventStream().Drain(events[:0])
//	    for _, e := range events {
//	        handle(e)
//	    }
//	}
//
// # Platforms
//
// The default translator is chosen at build time:
//
//   - linux: x11 (needs an x11.Display through WithNative)
//   - windows: win32
//   - darwin: macos (polls the Quartz event state)
//   - android: android (NDK motion, key and sensor events)
//   - ios: mobile (golang.org/x/mobile events)
//   - anything else: terminal (tcell events)
//
// WithTranslator overrides the choice, for example with Terminal or
// Synthetic.
//
// # Errors
//
// Only construction can fail, with an *InitError matching ErrInit.
// Unmapped native codes degrade to key.KeyUnknown and stream overflow
// overwrites the oldest unread event.
package input
