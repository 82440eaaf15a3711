// Package logging is the process-wide logger registry.
//
// Every writer added with AddLogger receives every message at or above the
// registry level. Without any logger added, messages are dropped.
package logging

import (
	"io"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var registry = struct {
	sync.RWMutex
	cores  []zapcore.Core
	level  zap.AtomicLevel
	logger *zap.SugaredLogger
}{
	level:  zap.NewAtomicLevelAt(zap.InfoLevel),
	logger: zap.NewNop().Sugar(),
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// NewStreamCore returns a console encoded core writing to w.
func NewStreamCore(w io.Writer) zapcore.Core {
	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		registry.level,
	)
}

// AddLogger adds a stream logger writing to w.
func AddLogger(w io.Writer) {
	AddCore(NewStreamCore(w))
}

// AddCore adds an arbitrary zap core to the registry.
func AddCore(c zapcore.Core) {
	registry.Lock()
	defer registry.Unlock()

	registry.cores = append(registry.cores, c)
	registry.logger = zap.New(zapcore.NewTee(registry.cores...)).Sugar()
}

// SetLevel changes the minimum level of every registered stream logger.
func SetLevel(l zapcore.Level) {
	registry.level.SetLevel(l)
}

// ParseLevel accepts the zap level names (debug, info, warn, error, ...).
func ParseLevel(s string) (zapcore.Level, error) {
	return zapcore.ParseLevel(s)
}

// Logger returns the current tee of all registered loggers.
func Logger() *zap.SugaredLogger {
	registry.RLock()
	defer registry.RUnlock()
	return registry.logger
}

// Reset removes all loggers.
func Reset() {
	registry.Lock()
	defer registry.Unlock()

	registry.cores = nil
	registry.logger = zap.NewNop().Sugar()
}

func Debug(args ...interface{})                 { Logger().Debug(args...) }
func Info(args ...interface{})                  { Logger().Info(args...) }
func Warn(args ...interface{})                  { Logger().Warn(args...) }
func Error(args ...interface{})                 { Logger().Error(args...) }
func Debugf(format string, args ...interface{}) { Logger().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { Logger().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { Logger().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { Logger().Errorf(format, args...) }
