package statusserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rkaplan/x987scout/internal/pipeline"
)

func TestHandleStatusNotRunningBeforeUpdate(t *testing.T) {
	s := New("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if running, _ := body["running"].(bool); running {
		t.Error("running = true, want false before any Update")
	}
}

func TestHandleStatusReflectsLatestSummary(t *testing.T) {
	s := New("127.0.0.1:0")

	result := &pipeline.Result{
		StepName:  "collection",
		Status:    pipeline.StatusCompleted,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(2 * time.Second),
	}
	summary := &pipeline.Summary{
		Results:   map[string]*pipeline.Result{"collection": result},
		Order:     []string{"collection"},
		Completed: 1,
	}
	s.Update(summary)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if running, _ := body["running"].(bool); !running {
		t.Error("running = false, want true after Update")
	}
	if completed, _ := body["completed"].(float64); completed != 1 {
		t.Errorf("completed = %v, want 1", body["completed"])
	}
	steps, _ := body["steps"].([]any)
	if len(steps) != 1 {
		t.Fatalf("steps has %d entries, want 1", len(steps))
	}
}

func TestHealthzReturnsOK(t *testing.T) {
	s := New("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status code = %d, want 200", rec.Code)
	}
}
