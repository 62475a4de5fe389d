package config

import (
	"fmt"
	"strings"
)

// DefaultCapacity is the stream capacity used when none is configured.
const DefaultCapacity = 1024

// Config holds every keystream setting.
type Config struct {
	Stream StreamConfig `toml:"stream"`
	Log    LogConfig    `toml:"log"`
	Evdev  EvdevConfig  `toml:"evdev"`
}

// StreamConfig configures the event stream.
type StreamConfig struct {
	// Capacity is the number of ring slots. Zero means DefaultCapacity.
	Capacity int `toml:"capacity" env:"STREAM_CAPACITY"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `toml:"level" env:"LOG_LEVEL"`

	// Format is "json" or "console".
	Format string `toml:"format" env:"LOG_FORMAT"`

	// File receives the log output. Empty means stderr.
	File string `toml:"file" env:"LOG_FILE"`
}

// EvdevConfig configures the Linux device reader.
type EvdevConfig struct {
	// Dir is scanned for event* nodes.
	Dir string `toml:"dir" env:"EVDEV_DIR"`

	// Grab requests exclusive access to each device.
	Grab bool `toml:"grab" env:"EVDEV_GRAB"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Stream: StreamConfig{Capacity: DefaultCapacity},
		Log:    LogConfig{Level: "info", Format: "console"},
		Evdev:  EvdevConfig{Dir: "/dev/input"},
	}
}

var (
	levels  = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}
	formats = []string{"json", "console"}
)

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	if c.Stream.Capacity < 0 {
		return &ValidationError{Path: "stream.capacity", Message: "must not be negative", Value: c.Stream.Capacity}
	}
	if !oneOf(c.Log.Level, levels) {
		return &ValidationError{
			Path:    "log.level",
			Message: "must be one of " + strings.Join(levels, ", "),
			Value:   c.Log.Level,
		}
	}
	if !oneOf(c.Log.Format, formats) {
		return &ValidationError{
			Path:    "log.format",
			Message: "must be one of " + strings.Join(formats, ", "),
			Value:   c.Log.Format,
		}
	}
	if c.Evdev.Dir == "" {
		return &ValidationError{Path: "evdev.dir", Message: "must not be empty", Value: c.Evdev.Dir}
	}
	return nil
}

// Normalize lower-cases the level and format names. Load, Parse and
// ApplyEnv call it; callers overriding fields afterwards call it again
// before Validate.
func (c *Config) Normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Capacity returns the effective stream capacity.
func (c Config) Capacity() int {
	if c.Stream.Capacity == 0 {
		return DefaultCapacity
	}
	return c.Stream.Capacity
}

// String returns a one-line summary.
func (c Config) String() string {
	return fmt.Sprintf("stream.capacity=%d log.level=%s log.format=%s evdev.dir=%s evdev.grab=%t",
		c.Capacity(), c.Log.Level, c.Log.Format, c.Evdev.Dir, c.Evdev.Grab)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
