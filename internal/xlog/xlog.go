// Package xlog is the logging seam every package that wants to emit
// structured diagnostics depends on, rather than depending on
// *zap.Logger directly -- the same shape the teacher's execution/
// subscription packages get from jensneuse/abstractlogger: callers
// take a small interface, so tests and callers that don't care about
// logging can pass Noop instead of standing up a real zap.Logger.
package xlog

import "go.uber.org/zap"

// Logger is the structured logging seam threaded through the executor
// and the schema builder. Field is zap's own
// field type, so call sites build fields with zap.String/zap.Int/...
// directly rather than through a second wrapper type.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// NewZap wraps a *zap.Logger as a Logger.
func NewZap(l *zap.Logger) Logger {
	return zapLogger{l}
}

type zapLogger struct{ l *zap.Logger }

func (z zapLogger) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z zapLogger) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z zapLogger) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
func (z zapLogger) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }

// Noop discards everything; the default when a caller leaves Logger
// nil (mirrors abstractlogger.Noop in the teacher's v2/pkg/engine/plan
// wiring: "if config.Logger == nil { config.Logger = ...Noop{} }").
type noop struct{}

func (noop) Debug(string, ...zap.Field) {}
func (noop) Info(string, ...zap.Field)  {}
func (noop) Warn(string, ...zap.Field)  {}
func (noop) Error(string, ...zap.Field) {}

var Noop Logger = noop{}
