// Package mobile translates golang.org/x/mobile app events into normalized
// input events. It serves iOS and any other target driven by the x/mobile
// app loop.
//
// Touch sequences are assigned the lowest free finger slot when they begin
// and keep it until they end, so slot numbers stay below eight no matter
// how large the platform sequence ids grow.
package mobile
