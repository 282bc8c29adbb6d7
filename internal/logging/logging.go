// Package logging wraps zap for the application's structured logs.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger atomic.Pointer[zap.Logger]
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path
}

// Init builds the process logger. Until it is called L returns a no-op logger.
func Init(cfg Config) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	if cfg.OutputPath != "" {
		zc.OutputPaths = []string{cfg.OutputPath}
	}

	l, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return err
	}
	logger.Store(l)
	return nil
}

// Replace installs l as the process logger. Tests use it with zaptest/observer.
func Replace(l *zap.Logger) {
	logger.Store(l)
}

// SetLevel changes the level at runtime.
func SetLevel(s string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return
	}
	level.SetLevel(lvl)
}

// L returns the process logger.
func L() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Named returns a child logger for a component.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries.
func Sync() error {
	if l := logger.Load(); l != nil {
		return l.Sync()
	}
	return nil
}
