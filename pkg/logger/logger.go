// Package logger provides opinionated logging capabilities for wayfinder
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger logs colored console output to stdout.
func NewLogger(debug bool) *zap.Logger {
	return newLogger(zapcore.AddSync(os.Stdout), debug, zapcore.CapitalColorLevelEncoder)
}

// NewWriterLogger logs to w without color codes. Used when stdout belongs
// to the terminal UI.
func NewWriterLogger(w io.Writer, debug bool) *zap.Logger {
	return newLogger(zapcore.AddSync(w), debug, zapcore.CapitalLevelEncoder)
}

// NewFileLogger appends to the file at path, or discards everything when
// path is empty. The returned close func releases the file.
func NewFileLogger(path string, debug bool) (*zap.Logger, func() error, error) {
	if path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return NewWriterLogger(f, debug), f.Close, nil
}

func newLogger(ws zapcore.WriteSyncer, debug bool, levelEncoder zapcore.LevelEncoder) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = levelEncoder

	// Set log level
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		ws,
		level,
	)

	return zap.New(core, zap.AddCaller())
}
