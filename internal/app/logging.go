package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	Level string
	// File, when set, receives logs in append mode.
	File string
	// Output is where logs are written when File is empty. Defaults to os.Stderr.
	Output io.Writer
	// Disabled discards all output.
	Disabled bool
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Output: os.Stderr,
	}
}

// ParseLevel parses a level name. "warning" is accepted as an alias of
// "warn" and the empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}
	return zapcore.ParseLevel(s)
}

// NewLogger builds a console-encoded zap logger. The returned function
// flushes the logger and closes the log file, if any.
func NewLogger(cfg LoggerConfig) (*zap.Logger, func() error, error) {
	if cfg.Disabled {
		return zap.NewNop(), func() error { return nil }, nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var (
		out     = cfg.Output
		closeFn = func() error { return nil }
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = os.Stderr
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), level)
	logger := zap.New(core)

	return logger, func() error {
		_ = logger.Sync() // stderr does not support fsync on every platform
		return closeFn()
	}, nil
}

// WithComponent returns a child logger scoped to a component.
func WithComponent(l *zap.Logger, component string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(component)
}
