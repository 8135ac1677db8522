package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider returns the default context used by context-unaware
// logging functions.
var DefaultContextProvider = context.TODO

// defaultLog is the logger used by the package-level logging functions.
var defaultLog atomic.Pointer[Logger]

func init() {
	SetDefault(Make(os.Stderr))
}

// Default returns the logger used by the package-level logging functions.
func Default() Logger {
	return *defaultLog.Load()
}

// SetDefault replaces the logger used by the package-level logging
// functions.
func SetDefault(l Logger) {
	defaultLog.Store(&l)
}

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	SetDefault(Default().Wrap(opts...))
}

// TraceContext logs a message at Trace level using the default logger with the
// provided context.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level using the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

// DebugContext logs a message at Debug level using the default logger with the
// provided context.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

// InfoContext logs a message at Info level using the default logger with the
// provided context.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

// WarnContext logs a message at Warn level using the default logger with the
// provided context.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at Error level using the default logger with the
// provided context.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), LevelError, msg, attrs...)
}

// With returns a new [Logger] that includes the given attributes in each log
// message using the default logger.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}
