// Package logger holds the process-wide zap logger for the lab service and
// its command-line tools.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init sets up the global logger once. "production" logs JSON at info,
// "test" discards everything, anything else logs to the console at debug.
// LOG_LEVEL overrides the level when it parses.
func Init(env string) {
	once.Do(func() {
		set(build(env, os.Getenv("LOG_LEVEL")))
	})
}

func build(env, level string) *zap.Logger {
	if env == "test" {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}
	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	cfg.InitialFields = map[string]interface{}{"service": "comlab"}

	base, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return base
}

// Get returns the global sugared logger, falling back to a development
// logger when Init was never called.
func Get() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s == nil {
		Init("development")
		mu.RLock()
		s = sugar
		mu.RUnlock()
	}
	return s
}

// Replace swaps the global logger for base and returns a func restoring the
// previous one. Tests use it with an observer core.
func Replace(base *zap.Logger) (restore func()) {
	once.Do(func() {})
	mu.Lock()
	prev := sugar
	sugar = base.Sugar()
	mu.Unlock()
	return func() {
		mu.Lock()
		sugar = prev
		mu.Unlock()
	}
}

// Sync flushes buffered entries. Call before exit.
func Sync() {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s != nil {
		_ = s.Sync()
	}
}

func set(base *zap.Logger) {
	mu.Lock()
	sugar = base.Sugar()
	mu.Unlock()
}
