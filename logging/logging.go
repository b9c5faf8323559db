// Package logging builds the zap loggers shared by hashkit packages.
//
// Packages accept a *zap.Logger through their options and fall back to
// zap.NewNop, so library code stays silent unless the caller wires a
// logger. The hashkit CLI builds one from HASHKIT_LOG_* variables.
package logging

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard errors for the logging package
var (
	ErrInvalidLevel  = errors.New("logging: invalid level")
	ErrInvalidFormat = errors.New("logging: invalid format")
)

var (
	defaultLogger *zap.Logger
	defaultLevel  zap.AtomicLevel
	defaultOnce   sync.Once
	defaultErr    error
)

// Init initializes the global logger with optional config
func Init(configs ...Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = &configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultLogger, defaultLevel, defaultErr = New(*cfg)
	})
	return defaultErr
}

// L returns the global logger, or a no-op logger before Init succeeds.
func L() *zap.Logger {
	if defaultLogger == nil {
		return zap.NewNop()
	}
	return defaultLogger
}

// SetLevel changes the global logger's level at runtime.
func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if defaultLogger != nil {
		defaultLevel.SetLevel(parsed.Level())
	}
	return nil
}

// Reset clears the global instance (for testing)
func Reset() {
	if defaultLogger != nil {
		_ = defaultLogger.Sync()
	}
	defaultLogger = nil
	defaultLevel = zap.AtomicLevel{}
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// New builds a logger and returns it with its runtime-adjustable level.
func New(cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	base := zap.NewProductionConfig()
	if cfg.Development {
		base = zap.NewDevelopmentConfig()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		base.Encoding = "json"
	case "console":
		base.Encoding = "console"
	default:
		return nil, zap.AtomicLevel{}, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	if cfg.Output != "" {
		base.OutputPaths = []string{cfg.Output}
	}
	base.Level = level
	base.DisableStacktrace = true
	base.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	logger, err := base.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger.Named("hashkit"), level, nil
}

// ParseLevel parses debug, info, warn or error. An empty string means info.
func ParseLevel(s string) (zap.AtomicLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}

	var parsed zapcore.Level
	if err := parsed.Set(strings.ToLower(s)); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return zap.NewAtomicLevelAt(parsed), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
