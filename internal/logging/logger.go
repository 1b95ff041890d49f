// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects log verbosity and destinations.
type Config struct {
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Console    io.Writer
}

// New creates a logger writing to the console and, when File is set, to a
// rotating log file.
func New(config Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}
	if config.Console == nil {
		config.Console = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleConfig := encoderConfig
	consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(config.Console), zap.NewAtomicLevelAt(level)),
	}

	if config.File != "" {
		if err := os.MkdirAll(filepath.Dir(config.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		writer := &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    orDefault(config.MaxSizeMB, 10),
			MaxBackups: orDefault(config.MaxBackups, 3),
			MaxAge:     orDefault(config.MaxAgeDays, 28),
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), zap.NewAtomicLevelAt(level)))
	}

	options := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if config.Debug {
		options = append(options, zap.AddCaller())
	}
	return zap.New(zapcore.NewTee(cores...), options...), nil
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
