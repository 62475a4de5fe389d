// Package config loads keystream settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file (Load, Parse)
//  3. KEYSTREAM_* environment variables (ApplyEnv)
//
// A minimal file:
//
//	[stream]
//	capacity = 1024
//
//	[log]
//	level = "debug"
//	format = "console"
//	file = "/tmp/keystream.log"
//
//	[evdev]
//	dir = "/dev/input"
//	grab = false
//
// Unknown keys are rejected so that typos surface as a *ParseError with
// the offending line and column.
package config
