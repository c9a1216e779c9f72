package logging

import (
	"context"
	"log/slog"
)

// Attribute keys shared by request-scoped loggers.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyTraceID       = "trace_id"
)

type loggerKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return defaultLogger
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithRequestID tags the context logger with the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withAttr(ctx, KeyRequestID, requestID)
}

// WithCorrelationID tags the context logger with the correlation id.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return withAttr(ctx, KeyCorrelationID, correlationID)
}

// WithTraceID tags the context logger with the OpenTelemetry trace id so
// citation logs can be joined with their spans.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return withAttr(ctx, KeyTraceID, traceID)
}

// withAttr leaves ctx unchanged for an empty value.
func withAttr(ctx context.Context, key, value string) context.Context {
	if value == "" {
		return ctx
	}
	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// SetDefault replaces the fallback logger and the slog default.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
