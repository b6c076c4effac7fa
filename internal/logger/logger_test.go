package logger

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAddsTraceIDs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{logger: zap.New(core)}

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.Logger(ctx).Info("hello")
	l.Logger(context.Background()).Info("plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("trace fields missing: %+v", fields)
	}
	if _, ok := entries[1].ContextMap()["trace_id"]; ok {
		t.Fatalf("plain context should not carry trace_id")
	}
}
