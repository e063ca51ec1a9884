package health

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"
)

func BenchmarkStoreChecker_Check(b *testing.B) {
	checker := NewStoreChecker("encoded", func(context.Context) error { return nil }, StoreCheckerConfig{})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = checker.Check(ctx)
	}
}

func BenchmarkMemoryChecker_Check(b *testing.B) {
	checker := NewMemoryChecker(MemoryCheckerConfig{
		Tiers: map[string]func() int{
			"bitmap":        func() int { return 128 },
			"postprocessed": func() int { return 16 },
		},
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = checker.Check(ctx)
	}
}

func BenchmarkAggregator_CheckAll(b *testing.B) {
	for _, limit := range []int{1, 0} {
		b.Run(fmt.Sprintf("limit=%d", limit), func(b *testing.B) {
			agg := NewAggregator(AggregatorConfig{Timeout: 10 * time.Second, MaxConcurrent: limit})
			for i := range 5 {
				name := fmt.Sprintf("tier%d", i)
				agg.Register(name, NewCheckerFunc(name, func(context.Context) Result { return Healthy("ok") }))
			}
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = agg.CheckAll(ctx)
			}
		})
	}
}

func BenchmarkDetailedHandler(b *testing.B) {
	agg := NewAggregator()
	agg.Register("encoded", NewCheckerFunc("encoded", func(context.Context) Result { return Healthy("ok") }))
	h := DetailedHandler(agg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", "/health", nil))
	}
}
