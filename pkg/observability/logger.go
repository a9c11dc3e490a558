package observability

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// NewLogger creates a text logger writing to output. Unknown levels fall
// back to info.
func NewLogger(level string, output io.Writer) *logrus.Logger {
	if output == nil {
		output = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return logger
}

// contextKey is the type for context keys
type contextKey string

// LoggerKey is the context key for the logger
const LoggerKey contextKey = "logger"

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a default stderr logger,
// with the trace and span ids of the current span attached
func FromContext(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(LoggerKey).(*logrus.Entry)
	if !ok {
		logger = logrus.NewEntry(NewLogger("info", os.Stderr))
	}
	return WithTraceContext(ctx, logger)
}

// WithTraceContext adds trace context to logger
func WithTraceContext(ctx context.Context, logger *logrus.Entry) *logrus.Entry {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return logger
	}

	spanCtx := span.SpanContext()
	return logger.WithFields(logrus.Fields{
		"trace_id": spanCtx.TraceID().String(),
		"span_id":  spanCtx.SpanID().String(),
	})
}
