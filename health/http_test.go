package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "OK")
	}
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		wantCode int
		wantBody string
	}{
		{"healthy", Healthy("ok"), http.StatusOK, "healthy"},
		{"degraded still ready", Degraded("slow"), http.StatusOK, "degraded"},
		{"unhealthy", Unhealthy("down", ErrCheckFailed), http.StatusServiceUnavailable, "UNHEALTHY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			agg.Register("backend", staticChecker("backend", tt.result))

			rec := httptest.NewRecorder()
			ReadinessHandler(agg)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestReportHandler(t *testing.T) {
	agg := NewAggregator()
	agg.Register("store", staticChecker("store", Healthy("reachable")))
	agg.Register("backend", staticChecker("backend", Unhealthy("down", ErrCheckFailed)))

	rec := httptest.NewRecorder()
	ReportHandler(agg)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if report.Status != "unhealthy" {
		t.Errorf("Status = %q, want %q", report.Status, "unhealthy")
	}
	if report.Checks["store"].Status != "healthy" {
		t.Errorf("Checks[store].Status = %q, want healthy", report.Checks["store"].Status)
	}
	if !strings.Contains(report.Checks["backend"].Error, "check failed") {
		t.Errorf("Checks[backend].Error = %q, want failure message", report.Checks["backend"].Error)
	}
}

func TestHandler_Routes(t *testing.T) {
	agg := NewAggregator()
	agg.Register("backend", staticChecker("backend", Healthy("ok")))
	mux := Handler(agg)

	for path, wantCode := range map[string]int{
		"/livez":   http.StatusOK,
		"/readyz":  http.StatusOK,
		"/healthz": http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != wantCode {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, wantCode)
		}
	}
}

func TestAggregatorLogsUnhealthyChecks(t *testing.T) {
	// The aggregator must not panic with the nop logger and must still
	// return results for failing checks.
	agg := NewAggregator()
	agg.Register("backend", staticChecker("backend", Unhealthy("down", ErrCheckFailed)))

	results := agg.CheckAll(context.Background())
	if results["backend"].Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", results["backend"].Status)
	}
}
