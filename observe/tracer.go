package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tier names used as the "cache.tier" attribute.
const (
	TierBitmap        = "bitmap"
	TierPostprocessed = "postprocessed"
	TierEncoded       = "encoded"
)

// Lookup operations.
const (
	OpGet    = "get"
	OpProbe  = "probe"
	OpEvict  = "evict"
	OpDelete = "delete"
)

// LookupMeta describes one cache tier access for telemetry purposes.
type LookupMeta struct {
	Tier      string // bitmap|postprocessed|encoded (required)
	Operation string // get|probe|evict|delete; defaults to get
	Key       string // rendered cache key (optional)
	KeyKind   string // simple|bitmap (optional)
}

func (m LookupMeta) op() string {
	if m.Operation == "" {
		return OpGet
	}
	return m.Operation
}

// SpanName returns the deterministic span name for this lookup.
// Format: cache.<tier>.<operation>
func (m LookupMeta) SpanName() string {
	return "cache." + m.Tier + "." + m.op()
}

func (m LookupMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("cache.tier", m.Tier),
		attribute.String("cache.operation", m.op()),
	}
	if m.KeyKind != "" {
		attrs = append(attrs, attribute.String("cache.key.kind", m.KeyKind))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with lookup span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndLookup must be best-effort and must not panic.
type Tracer interface {
	// StartLookup starts a span for a tier access.
	StartLookup(ctx context.Context, meta LookupMeta) (context.Context, trace.Span)

	// EndLookup ends the span, recording the outcome and any error.
	EndLookup(span trace.Span, hit bool, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	if t == nil {
		return NopTracer()
	}
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartLookup(ctx context.Context, meta LookupMeta) (context.Context, trace.Span) {
	attrs := meta.attributes()
	if meta.Key != "" {
		attrs = append(attrs, attribute.String("cache.key", meta.Key))
	}
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndLookup(span trace.Span, hit bool, err error) {
	span.SetAttributes(attribute.Bool("cache.hit", hit))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartLookup(ctx context.Context, meta LookupMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndLookup(span trace.Span, _ bool, _ error) {
	span.End()
}
