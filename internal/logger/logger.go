package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Options struct {
	Production bool
}

// Logger hands out zap loggers enriched with the trace of the calling context.
type Logger struct {
	logger *zap.Logger
}

func New(opts Options) *Logger {
	var (
		l   *zap.Logger
		err error
	)
	if opts.Production {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		l = zap.NewNop()
	}
	return &Logger{logger: l}
}

// Nop returns a Logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

func (l *Logger) Logger(ctx context.Context) *zap.Logger {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return l.logger
	}

	return l.logger.With(
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	)
}

func (l *Logger) Sync() error {
	return l.logger.Sync()
}
