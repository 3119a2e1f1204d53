package logger

import (
	"context"
	"log/slog"

	tracectx "github.com/arcentrix/workpipe/pkg/trace/context"
)

// defaultContext prefers the goroutine-local context so worker logs
// keep trace correlation without explicit plumbing.
func defaultContext() context.Context {
	if ctx := tracectx.GetContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Component derives a logger scoped to one runtime component
// (dispatcher, source, metrics). The field rides on every record so a
// stalled drain or a dropped submission can be attributed without
// grepping message text.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.With("component", name)}
}

// logw is the single funnel for the leveled structured methods.
func (l *Logger) logw(level slog.Level, msg string, keysAndValues ...any) {
	l.Logger.Log(defaultContext(), level, msg, keysAndValues...)
}

// Debugw logs a structured message at debug level.
func (l *Logger) Debugw(msg string, keysAndValues ...any) {
	l.logw(slog.LevelDebug, msg, keysAndValues...)
}

// Infow logs a structured message at info level.
func (l *Logger) Infow(msg string, keysAndValues ...any) {
	l.logw(slog.LevelInfo, msg, keysAndValues...)
}

// Warnw logs a structured message at warn level.
func (l *Logger) Warnw(msg string, keysAndValues ...any) {
	l.logw(slog.LevelWarn, msg, keysAndValues...)
}

// Errorw logs a structured message at error level.
func (l *Logger) Errorw(msg string, keysAndValues ...any) {
	l.logw(slog.LevelError, msg, keysAndValues...)
}
