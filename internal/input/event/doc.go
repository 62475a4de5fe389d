// Package event defines the normalized input records and the ring-buffered
// stream that carries them from translators to the application.
//
// # Records
//
// Every Event has a Kind and a Payload. The payload type is fixed by the
// kind class:
//
//	KeyDown, KeyUp                 KeyPayload
//	Char                           CharPayload
//	MouseDown, MouseUp, MouseMove  MousePayload
//	Touch*                         TouchPayload
//	Acceleration                   AccelerationPayload
//
// # Stream
//
// Stream is lossy by design of the consumer contract: producers never block,
// and when the application falls more than Cap events behind, the oldest
// unread records are overwritten. Drain once per frame:
//
//	for _, e := range stream.Drain(buf[:0]) {
//	    handle(e)
//	}
package event
