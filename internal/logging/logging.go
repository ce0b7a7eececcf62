// Package logging is a thin facade over zap, in the style of the teacher's
// own logging package: a named Logger with a process-global default that
// can be swapped by a caller that wants structured output routed elsewhere.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the subset of *zap.SugaredLogger the rest of the module needs.
type Logger = *zap.SugaredLogger

var (
	globalMu     sync.RWMutex
	globalLogger = NewLogger("stratum")
)

// newZapConfig mirrors the teacher's console encoder: colored levels, no
// stack traces, ISO8601 timestamps.
func newZapConfig() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a new named logger writing Info+ to stdout.
func NewLogger(name string) Logger {
	cfg := newZapConfig()
	base, err := cfg.Build()
	if err != nil {
		// zap.Config.Build only fails on a malformed encoder config, which
		// newZapConfig never produces.
		panic(err)
	}
	return base.Sugar().Named(name)
}

// Global returns the package-wide default logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// ReplaceGlobal swaps the package-wide default logger.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}
