// Package logger provides the process-wide structured logger (Zap, sugared).
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init configures the global logger for the given environment.
// "production" selects the JSON encoder, "test" discards everything,
// anything else uses the development console encoder.
func Init(env string) {
	InitWithLevel(env, "")
}

// InitWithLevel is Init with an explicit minimum level ("debug", "info", "warn", "error").
// An empty level keeps the environment default.
func InitWithLevel(env, level string) {
	once.Do(func() {
		set(build(env, level))
	})
}

func build(env, level string) *zap.SugaredLogger {
	if env == "test" {
		return zap.NewNop().Sugar()
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if lvl, ok := parseLevel(level); ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Sugar()
}

func parseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	}
	return zapcore.InfoLevel, false
}

// Get returns the global sugared logger, initializing a development logger
// when Init was never called.
func Get() *zap.SugaredLogger {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l == nil {
		Init("development")
		mu.RLock()
		l = sugar
		mu.RUnlock()
	}
	return l
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Replace swaps the global logger, e.g. for an observed logger in tests.
func Replace(l *zap.SugaredLogger) {
	once.Do(func() {})
	set(l)
}

func set(l *zap.SugaredLogger) {
	mu.Lock()
	sugar = l
	mu.Unlock()
}

// Sync flushes buffered entries. Call before exit.
func Sync() {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
