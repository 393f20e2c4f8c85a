package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asakaida/annostore/internal/repositories"
)

func TestCollector_DebugHandler(t *testing.T) {
	collector := NewCollector()
	collector.SetStore(&fakeStats{stats: repositories.Stats{Targets: 2, Annotations: 3}})

	instrument := Middleware(collector, nil)
	h := instrument("target", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	serve(t, h, http.MethodGet)
	serve(t, h, http.MethodGet)

	rec := httptest.NewRecorder()
	collector.DebugHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Store.Targets != 2 || snap.Store.Annotations != 3 {
		t.Errorf("store = %+v, want 2 targets and 3 annotations", snap.Store)
	}
	if snap.API.RequestCounts["target"] != 2 {
		t.Errorf("request count = %d, want 2", snap.API.RequestCounts["target"])
	}
	if snap.API.ErrorCounts["target"] != 2 {
		t.Errorf("error count = %d, want 2", snap.API.ErrorCounts["target"])
	}
}

func TestCollector_DebugHandlerRejectsWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCollector().DebugHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/stats", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
