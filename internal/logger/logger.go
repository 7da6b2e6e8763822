// Package logger provides a process-wide structured logger built on zap,
// with a dynamically adjustable level and context-aware helper functions.
package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // Process-wide logger state, guarded by mutex/atomic.
var (
	mu          sync.RWMutex
	atomicLevel = zap.NewAtomicLevel()
	current     = New(atomicLevel)
)

func init() {
	SetLevel(zapcore.InfoLevel)
}

// New builds a zap.Logger writing human-readable console output at the given level.
// A nil level defaults to info.
func New(level zapcore.LevelEnabler) *zap.Logger {
	if level == nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		level,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLogLevel parses a textual log level (case-insensitive, surrounding
// whitespace tolerated). It returns zapcore.InfoLevel and false on failure.
func ParseLogLevel(input string) (zapcore.Level, bool) {
	var level zapcore.Level

	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return zapcore.InfoLevel, false
	}

	if err := level.UnmarshalText([]byte(trimmed)); err != nil {
		return zapcore.InfoLevel, false
	}

	return level, true
}

// Level returns the currently configured log level.
func Level() zapcore.Level {
	return atomicLevel.Level()
}

// SetLevel adjusts the currently configured log level in place.
func SetLevel(level zapcore.Level) {
	atomicLevel.SetLevel(level)
}

// Logger returns the process-wide logger instance.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return current
}

// SetLogger replaces the process-wide logger instance. Intended for tests
// and for wiring an alternate sink at startup.
func SetLogger(newLogger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()

	current = newLogger
}

func from(_ context.Context) *zap.Logger {
	return Logger()
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, msg string) {
	from(ctx).Debug(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	from(ctx).Sugar().Debugf(format, args...)
}

// DebugKV logs a message at debug level with structured key/value pairs.
func DebugKV(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Sugar().Debugw(msg, keysAndValues...)
}

// Info logs a message at info level.
func Info(ctx context.Context, msg string) {
	from(ctx).Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	from(ctx).Sugar().Infof(format, args...)
}

// InfoKV logs a message at info level with structured key/value pairs.
func InfoKV(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Sugar().Infow(msg, keysAndValues...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, msg string) {
	from(ctx).Warn(msg)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	from(ctx).Sugar().Warnf(format, args...)
}

// WarnKV logs a message at warn level with structured key/value pairs.
func WarnKV(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Sugar().Warnw(msg, keysAndValues...)
}

// Error logs a message at error level.
func Error(ctx context.Context, msg string) {
	from(ctx).Error(msg)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	from(ctx).Sugar().Errorf(format, args...)
}

// ErrorKV logs a message at error level with structured key/value pairs.
func ErrorKV(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Sugar().Errorw(msg, keysAndValues...)
}

// Fatal logs a message at fatal level and then calls os.Exit(1).
func Fatal(ctx context.Context, msg string) {
	from(ctx).Fatal(msg)
}

// Fatalf logs a formatted message at fatal level and then calls os.Exit(1).
func Fatalf(ctx context.Context, format string, args ...any) {
	from(ctx).Sugar().Fatalf(format, args...)
}

// FatalKV logs a message at fatal level with structured key/value pairs and
// then calls os.Exit(1).
func FatalKV(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Sugar().Fatalw(msg, keysAndValues...)
}
