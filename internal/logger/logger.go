// Package logger builds the zap logger used by both commands. Output goes to
// stderr so stdout stays free for the report and the MCP stdio protocol.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted by ParseLevel, lowest first
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel converts a configured level name
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s (must be one of: %s)",
			level, strings.Join(Levels, ", "))
	}
}

// New returns a console logger writing to w at the given level
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)
	return zap.New(core), nil
}

// NewStderr returns a console logger writing to os.Stderr
func NewStderr(level string) (*zap.Logger, error) {
	return New(level, os.Stderr)
}

// Sync flushes buffered entries. Syncing a terminal fails on some platforms,
// so the error is dropped.
func Sync(l *zap.Logger) {
	if l != nil {
		_ = l.Sync()
	}
}
