// Package logger builds the application's zap logger. Output goes to a
// file because the terminal belongs to the UI.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how to log.
type Config struct {
	// File is the log file path. Empty disables logging.
	File string `mapstructure:"file"`

	// Level is "debug", "info", "warn" or "error".
	Level string `mapstructure:"level"`

	// Format is "console" or "json".
	Format string `mapstructure:"format"`
}

// DefaultPath returns $XDG_STATE_HOME/pmoquiz/pmoquiz.log, falling back to
// ~/.local/state.
func DefaultPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "pmoquiz", "pmoquiz.log")
}

// New builds a logger from cfg. The returned func flushes and closes the
// file. On error the logger is a no-op and still safe to use.
func New(cfg Config) (*zap.Logger, func(), error) {
	nop := func() {}
	if cfg.File == "" {
		return zap.NewNop(), nop, nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return zap.NewNop(), nop, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return zap.NewNop(), nop, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zap.NewNop(), nop, fmt.Errorf("create log directory: %w", err)
	}
	sink, closeSink, err := zap.Open(cfg.File)
	if err != nil {
		return zap.NewNop(), nop, fmt.Errorf("open log file: %w", err)
	}

	log := zap.New(zapcore.NewCore(encoder, sink, level),
		zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return log, func() {
		_ = log.Sync()
		closeSink()
	}, nil
}
