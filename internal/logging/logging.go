// Package logging builds the zap loggers used across keystream.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/keystream/internal/config"
)

// NewConfig returns the zap configuration for cfg. Stack traces are
// disabled; console output colors its levels.
func NewConfig(cfg config.LogConfig) (zap.Config, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("logging: %w", err)
	}

	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoding := strings.ToLower(cfg.Format)
	switch encoding {
	case "", "console":
		encoding = "console"
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
	default:
		return zap.Config{}, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}
	return zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding,
		EncoderConfig:     enc,
		DisableStacktrace: true,
		OutputPaths:       []string{out},
		ErrorOutputPaths:  []string{"stderr"},
	}, nil
}

// New builds a logger for cfg.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	zc, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}
