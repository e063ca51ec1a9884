package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(agg *Aggregator, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	RegisterHandlers(mux, agg)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(NewAggregator(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("/healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		status   Status
		wantCode int
		wantBody string
	}{
		{StatusHealthy, http.StatusOK, "OK"},
		{StatusDegraded, http.StatusOK, "DEGRADED"},
		{StatusUnhealthy, http.StatusServiceUnavailable, "UNHEALTHY"},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			agg := NewAggregator()
			agg.Register("redis", fixed("redis", tt.status))
			rec := serve(agg, "/readyz")
			if rec.Code != tt.wantCode || rec.Body.String() != tt.wantBody {
				t.Errorf("/readyz = %d %q, want %d %q", rec.Code, rec.Body.String(), tt.wantCode, tt.wantBody)
			}
		})
	}
}

func TestDetailed(t *testing.T) {
	agg := NewAggregator()
	agg.Register("redis", NewStoreChecker("redis", func(context.Context) error {
		return errors.New("dial tcp: refused")
	}, StoreCheckerConfig{}))
	agg.Register("file", fixed("file", StatusHealthy))

	rec := serve(agg, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/health code = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", report.Status)
	}
	if got := report.Checks["redis"]; !strings.Contains(got.Error, "refused") {
		t.Errorf("redis check = %+v", got)
	}
	if got := report.Checks["file"].Status; got != "healthy" {
		t.Errorf("file status = %q, want healthy", got)
	}
}

func TestSingleCheck(t *testing.T) {
	agg := NewAggregator()
	agg.Register("redis", fixed("redis", StatusDegraded))

	rec := serve(agg, "/health/redis")
	if rec.Code != http.StatusOK {
		t.Errorf("/health/redis code = %d, want 200", rec.Code)
	}
	var got CheckReport
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil || got.Status != "degraded" {
		t.Errorf("/health/redis = %+v, %v", got, err)
	}

	if rec := serve(agg, "/health/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("/health/nope code = %d, want 404", rec.Code)
	}
}
