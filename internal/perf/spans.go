package perf

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "lockey"

var (
	exporterMu   sync.Mutex
	spanExporter *exporter
	provider     *sdktrace.TracerProvider
)

func ensureProvider() {
	exporterMu.Lock()
	defer exporterMu.Unlock()

	if provider != nil {
		return
	}

	spanExporter = newExporter()
	provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(spanExporter))
	otel.SetTracerProvider(provider)
}

// StartSpan starts an OpenTelemetry span under the lockey tracer. A nil
// context is tolerated for test convenience.
func StartSpan(ctx context.Context, name string, opts ...oteltrace.SpanStartOption) (context.Context, oteltrace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	ensureProvider()
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

// SnapshotSpans returns every span exported so far.
func SnapshotSpans() ([]sdktrace.ReadOnlySpan, error) {
	ensureProvider()
	if err := provider.ForceFlush(context.Background()); err != nil {
		return nil, err
	}
	return spanExporter.Snapshot(), nil
}

// Reset clears both the span exporter and the mark/measure log. Test helper.
func Reset() {
	ClearLog()

	exporterMu.Lock()
	defer exporterMu.Unlock()
	if spanExporter != nil {
		spanExporter.Reset()
	}
}
