// Package script drives synthetic input from Lua.
//
// A Runner exposes an "input" table to scripts. Gesture functions go
// through the same session trackers the platform translators use, so
// deltas, hold durations and velocities follow the normal rules:
//
//	input.type("Hello")                -- KeyDown/Char/KeyUp per character
//	input.key_down("lctrl") input.key_up("lctrl")
//	input.mouse_move(10, 20)
//	input.click("left")
//	input.touch_begin(0, 100, 100)
//	input.wait(0.25)                   -- seconds on the runner's clock
//	input.touch_end(0, 160, 180)
//	input.accel(0, -9.8, 0)
//
// The raw post functions inject records as given:
//
//	input.post_key("KeyDown", "a", 30, "shift")
//	input.post_mouse("MouseMove", x, y, dx, dy, dz, "none", "left")
//	input.post_touch("TouchMove", x, y, dx, dy, velocity, finger, fingers)
//	input.post_acceleration("Acceleration", x, y, z)
//
// Scripts run with the base, table, string and math libraries only.
package script
