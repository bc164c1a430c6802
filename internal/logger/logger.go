// Package logger provides the process-wide zap logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger. "production" gets the JSON encoder, "test"
// a no-op logger, anything else the development console encoder. An empty
// or unknown level keeps the encoder's default.
func Init(env, level string) {
	once.Do(func() {
		var cfg zap.Config
		switch env {
		case "test":
			sugar = zap.NewNop().Sugar()
			return
		case "production":
			cfg = zap.NewProductionConfig()
		default:
			cfg = zap.NewDevelopmentConfig()
		}

		if lvl, err := zapcore.ParseLevel(level); err == nil && level != "" {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// on first use.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development", "")
	}
	return sugar
}

// Named returns a child logger tagged with the given component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes buffered entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
