package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordRequest_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			reg := NewRegistry()
			reg.RecordRequest("GET", "/", tt.status, 0.01)

			mfs, err := reg.Gather()
			if err != nil {
				t.Fatalf("gather failed: %v", err)
			}

			found := false
			for _, mf := range mfs {
				if mf.GetName() == "http_requests_total" {
					for _, m := range mf.GetMetric() {
						for _, label := range m.GetLabel() {
							if label.GetName() == "status" && label.GetValue() == tt.expected {
								found = true
							}
						}
					}
				}
			}
			if !found {
				t.Errorf("expected status label %s for status code %d", tt.expected, tt.status)
			}
		})
	}
}

func TestRegistry_RecordRender(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRender("ok", 0.2)
	reg.RecordRender("error", 0.1)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	var total float64
	for _, mf := range mfs {
		if mf.GetName() == "backplot_renders_total" {
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
		}
	}
	if total != 2 {
		t.Errorf("expected 2 renders recorded, got %v", total)
	}
}

func TestRegistry_Gauges(t *testing.T) {
	reg := NewRegistry()

	reg.SetPanels(4)
	reg.SetDocumentBytes(2048)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	want := map[string]float64{
		"backplot_panels_rendered": 4,
		"backplot_document_bytes":  2048,
	}
	for _, mf := range mfs {
		if expected, ok := want[mf.GetName()]; ok {
			for _, m := range mf.GetMetric() {
				if m.GetGauge().GetValue() != expected {
					t.Errorf("%s = %v, want %v", mf.GetName(), m.GetGauge().GetValue(), expected)
				}
			}
			delete(want, mf.GetName())
		}
	}
	for name := range want {
		t.Errorf("metric %s not found", name)
	}
}

func TestHTTPMiddleware(t *testing.T) {
	reg := NewRegistry()

	handler := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dash", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			for _, m := range mf.GetMetric() {
				for _, label := range m.GetLabel() {
					if label.GetName() == "status" && label.GetValue() == "4xx" {
						found = true
					}
				}
			}
		}
	}
	if !found {
		t.Error("middleware did not record the request")
	}
}

func TestHTTPMiddleware_NormalizesDeepPaths(t *testing.T) {
	reg := NewRegistry()

	handler := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports/2024/backplot.html", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() != "path" {
					continue
				}
				if label.GetValue() != "/reports" {
					t.Errorf("path label = %q, want %q", label.GetValue(), "/reports")
				}
			}
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/healthz", "/healthz"},
		{"/metrics/", "/metrics"},
		{"/reports/2024/x.html", "/reports"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
