// Package logging provides the structured logger used across the service and
// the mini-app client. Every entry carries the request id and operation name.
package logging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

// WithRequestID stores a request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id from ctx, or "" when none was set.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger wraps zap with request context.
type Logger struct {
	zap *zap.Logger
}

// New builds a logger for the given level ("debug", "info", "warn", "error")
// and environment. Production uses JSON output, everything else the console encoder.
func New(level, env string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{zap: z}, nil
}

// Wrap adapts an existing zap logger.
func Wrap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Zap exposes the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Named returns a child logger with a component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// For returns a request-scoped logger carrying the request id found in ctx.
func (l *Logger) For(ctx context.Context) *Logger {
	rid := RequestID(ctx)
	if rid == "" {
		return l
	}
	return &Logger{zap: l.zap.With(zap.String("request_id", rid))}
}

// Info logs an info message for an operation.
func (l *Logger) Info(operation, msg string, fields ...zap.Field) {
	l.zap.Info(msg, append([]zap.Field{zap.String("operation", operation)}, fields...)...)
}

// Warn logs a warning for an operation.
func (l *Logger) Warn(operation, msg string, fields ...zap.Field) {
	l.zap.Warn(msg, append([]zap.Field{zap.String("operation", operation)}, fields...)...)
}

// Error logs an error for an operation.
func (l *Logger) Error(operation string, err error, fields ...zap.Field) {
	l.zap.Error(err.Error(), append([]zap.Field{zap.String("operation", operation), zap.Error(err)}, fields...)...)
}

// Debug logs a debug message for an operation.
func (l *Logger) Debug(operation, msg string, fields ...zap.Field) {
	l.zap.Debug(msg, append([]zap.Field{zap.String("operation", operation)}, fields...)...)
}
