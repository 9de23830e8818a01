package perf

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type SpanSnapshot struct {
	Name         string
	TraceID      string
	SpanID       string
	ParentSpanID string
	StartTime    time.Time
	EndTime      time.Time
	Attributes   map[string]interface{}
}

func GetSpans() ([]SpanSnapshot, error) {
	spans, err := SnapshotSpans()
	if err != nil {
		return nil, err
	}

	out := make([]SpanSnapshot, 0, len(spans))
	for _, span := range spans {
		out = append(out, snapshotSpan(span))
	}
	return out, nil
}

func FindSpanByName(spans []SpanSnapshot, name string) (SpanSnapshot, bool) {
	for _, span := range spans {
		if span.Name == name {
			return span, true
		}
	}
	return SpanSnapshot{}, false
}

func snapshotSpan(span sdktrace.ReadOnlySpan) SpanSnapshot {
	sc := span.SpanContext()
	psc := span.Parent()

	out := SpanSnapshot{
		Name:       span.Name(),
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		StartTime:  span.StartTime(),
		EndTime:    span.EndTime(),
		Attributes: attributesToMap(span.Attributes()),
	}
	if psc.IsValid() {
		out.ParentSpanID = psc.SpanID().String()
	}

	return out
}

func attributesToMap(attrs []attribute.KeyValue) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}

	out := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		out[string(attr.Key)] = attr.Value.AsInterface()
	}
	return out
}
