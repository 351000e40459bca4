// Package trace wires optional OpenTelemetry span export
package trace

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "stocksage"

var (
	mu             sync.RWMutex
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
)

// Options configures span export
type Options struct {
	Enabled bool
	Writer  io.Writer // destination for exported spans
	Version string
}

// Init installs a tracer provider that exports spans as JSON to opts.Writer.
// When tracing is disabled StartSpan returns no-op spans.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if !opts.Enabled || opts.Writer == nil {
		tracer = nil
		return nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(opts.Writer))
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(tracerName),
			semconv.ServiceVersion(opts.Version),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = tracerProvider.Tracer(tracerName)
	return nil
}

// Shutdown flushes pending spans and disables tracing
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	tracer = nil
	if tracerProvider == nil {
		return nil
	}
	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil
	return err
}

// Enabled reports whether spans are being exported
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tracer != nil
}

// StartSpan starts a span tagged with the ticker
func StartSpan(ctx context.Context, name, ticker string) (context.Context, trace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()

	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Start(ctx, name, trace.WithAttributes(attribute.String("ticker", ticker)))
}

// RecordError marks the span failed. A nil error is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
