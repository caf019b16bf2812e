package logging

import "context"

type loggerCtxKeyType struct{}

// LoggerCtxKey is the context key under which ContextWithLogger stores a
// Logger, exported so callers can detect or override it directly.
var LoggerCtxKey = loggerCtxKeyType{}

// ContextWithLogger returns a copy of ctx carrying l.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

// FromContext returns the Logger carried by ctx, or a fresh default Logger
// when ctx carries none, an unexpected type, or a nil Logger.
func FromContext(ctx context.Context) Logger {
	l, ok := ctx.Value(LoggerCtxKey).(Logger)
	if !ok || l == nil {
		return NewLogger(nil)
	}
	return l
}
