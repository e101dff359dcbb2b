// Package log constructs the zap loggers used across the ranking engine
// and measurement harness. Both constructors return a base *zap.Logger,
// which callers pass down to the packages that log.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger at the given level ("debug", "info",
// "warn", "error"). An unrecognised level falls back to "info".
func New(level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		// Config is a constant literal above; Build only fails on an
		// invalid sink/encoder name, which never happens here.
		panic(err)
	}
	return logger
}

// NewNop returns a logger that discards everything, for tests and
// library callers that have not configured logging.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
