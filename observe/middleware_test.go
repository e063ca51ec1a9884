package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type testHarness struct {
	mw     *Middleware
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	metrics, reader := newTestMetrics(t)
	var logs bytes.Buffer
	return &testHarness{
		mw:     NewMiddleware(NewTracer(tp.Tracer("test")), metrics, NewLoggerWithWriter("debug", &logs)),
		spans:  rec,
		reader: reader,
		logs:   &logs,
	}
}

func TestMiddleware_Hit(t *testing.T) {
	h := newHarness(t)
	meta := LookupMeta{Tier: TierBitmap, Key: `simple("k")`}

	hit, err := h.mw.Wrap(func(context.Context, LookupMeta) (bool, error) {
		return true, nil
	})(context.Background(), meta)
	if err != nil || !hit {
		t.Fatalf("Wrap() = %v, %v; want true, nil", hit, err)
	}

	if n := len(h.spans.Ended()); n != 1 {
		t.Fatalf("got %d spans, want 1", n)
	}
	lookups := findMetric(collect(t, h.reader), MetricLookups)
	if got := sumWhere(t, lookups, attribute.String("cache.result", "hit")); got != 1 {
		t.Errorf("hits = %d, want 1", got)
	}
	if !strings.Contains(h.logs.String(), `"msg":"cache lookup"`) {
		t.Errorf("expected debug lookup log, got %q", h.logs.String())
	}
}

func TestMiddleware_ErrorPropagates(t *testing.T) {
	h := newHarness(t)
	want := errors.New("connection refused")

	_, err := h.mw.Lookup(context.Background(), LookupMeta{Tier: TierEncoded}, func(context.Context) (bool, error) {
		return false, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Lookup() error = %v, want %v", err, want)
	}
	if !strings.Contains(h.logs.String(), `"level":"error"`) {
		t.Errorf("expected error log, got %q", h.logs.String())
	}
}

func TestMiddleware_MissingTier(t *testing.T) {
	h := newHarness(t)
	called := false
	_, err := h.mw.Lookup(context.Background(), LookupMeta{}, func(context.Context) (bool, error) {
		called = true
		return true, nil
	})
	if !errors.Is(err, ErrMissingTier) {
		t.Fatalf("error = %v, want ErrMissingTier", err)
	}
	if called {
		t.Error("wrapped function ran without a tier")
	}
}

func TestMiddleware_PropagatesSpanContext(t *testing.T) {
	h := newHarness(t)
	_, _ = h.mw.Lookup(context.Background(), LookupMeta{Tier: TierBitmap}, func(ctx context.Context) (bool, error) {
		h.mw.Logger().Info(ctx, "inner")
		return false, nil
	})
	if !strings.Contains(h.logs.String(), "trace_id") {
		t.Errorf("inner log missing trace_id: %q", h.logs.String())
	}
}

func TestNewMiddleware_NilComponents(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)
	if _, err := mw.Lookup(context.Background(), LookupMeta{Tier: TierBitmap}, func(context.Context) (bool, error) {
		return false, nil
	}); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
}
