package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"

	"gridmerge/internal/api/ws"
	"gridmerge/internal/config"
	"gridmerge/internal/session"
	"gridmerge/internal/store"
)

type fakeResults struct{}

func (fakeResults) Runs(ctx context.Context, solver string) ([]store.Run, error) {
	return []store.Run{{ID: "x", Solver: "greedy", Seed: 1, Score: 42}}, nil
}

func (fakeResults) Totals(ctx context.Context) ([]store.SolverTotal, error) {
	return []store.SolverTotal{{Solver: "greedy", Runs: 1, Total: 42, Best: 42, Worst: 42}}, nil
}

func newTestRouter(results ResultLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	cfg := config.Config{Strategy: "greedy"}
	m := session.NewManager(store.NewMemoryStore(), cfg, logger)
	hub := ws.NewHub(m, logger)
	m.SetHub(hub)
	return SetupRouter(m, hub, results, cfg, logger)
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w, out
}

func planned() []int {
	values := make([]int, 100)
	for i := range values {
		values[i] = 1 + i%3
	}
	return values
}

func TestSessionLifecycle(t *testing.T) {
	r := newTestRouter(nil)

	w, body := do(t, r, http.MethodPost, "/api/sessions", gin.H{"values": planned()})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %v", w.Code, body)
	}
	id := body["session"].(map[string]interface{})["id"].(string)

	w, body = do(t, r, http.MethodPost, "/api/sessions/"+id+"/turns", gin.H{"slot": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("turn: status %d body %v", w.Code, body)
	}
	if body["direction"] != "F" {
		t.Errorf("first turn direction = %v, want F", body["direction"])
	}
	if scores := body["scores"].(map[string]interface{}); len(scores) != 4 {
		t.Errorf("scores = %v", scores)
	}

	w, body = do(t, r, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}
	if turn := body["session"].(map[string]interface{})["turn"].(float64); turn != 1 {
		t.Errorf("turn = %v, want 1", turn)
	}
}

func TestSessionErrors(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"short values", http.MethodPost, "/api/sessions", gin.H{"values": []int{1, 2}}, http.StatusBadRequest},
		{"no values", http.MethodPost, "/api/sessions", gin.H{}, http.StatusBadRequest},
		{"bad strategy", http.MethodPost, "/api/sessions", gin.H{"values": planned(), "strategy": "nope"}, http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/api/sessions/missing", nil, http.StatusNotFound},
		{"turn unknown session", http.MethodPost, "/api/sessions/missing/turns", gin.H{"slot": 1}, http.StatusNotFound},
	}
	for _, tt := range tests {
		w, body := do(t, r, tt.method, tt.path, tt.body)
		if w.Code != tt.want {
			t.Errorf("%s: status %d, want %d (%v)", tt.name, w.Code, tt.want, body)
		}
	}

	_, body := do(t, r, http.MethodPost, "/api/sessions", gin.H{"values": planned()})
	id := body["session"].(map[string]interface{})["id"].(string)
	w, _ := do(t, r, http.MethodPost, "/api/sessions/"+id+"/turns", gin.H{"slot": 101})
	if w.Code != http.StatusBadRequest {
		t.Errorf("slot out of range: status %d", w.Code)
	}
	w, _ = do(t, r, http.MethodPost, "/api/sessions/"+id+"/turns", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing slot: status %d", w.Code)
	}
}

func TestTerminalSessionConflicts(t *testing.T) {
	r := newTestRouter(nil)
	_, body := do(t, r, http.MethodPost, "/api/sessions", gin.H{"values": planned()})
	id := body["session"].(map[string]interface{})["id"].(string)

	for i := 0; i < 100; i++ {
		w, body := do(t, r, http.MethodPost, "/api/sessions/"+id+"/turns", gin.H{"slot": 1})
		if w.Code != http.StatusOK {
			t.Fatalf("turn %d: status %d (%v)", i, w.Code, body)
		}
		if done := body["done"].(bool); done != (i == 99) {
			t.Fatalf("turn %d: done=%v", i, done)
		}
	}
	w, _ := do(t, r, http.MethodPost, "/api/sessions/"+id+"/turns", gin.H{"slot": 1})
	if w.Code != http.StatusConflict {
		t.Errorf("after sentinel: status %d, want 409", w.Code)
	}
}

func TestResultsAndConfig(t *testing.T) {
	w, _ := do(t, newTestRouter(nil), http.MethodGet, "/api/results", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("results without db: status %d", w.Code)
	}

	r := newTestRouter(fakeResults{})
	w, body := do(t, r, http.MethodGet, "/api/results?solver=greedy", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("results: status %d", w.Code)
	}
	if runs := body["runs"].([]interface{}); len(runs) != 1 {
		t.Errorf("runs = %v", runs)
	}

	w, body = do(t, r, http.MethodGet, "/api/config", nil)
	if w.Code != http.StatusOK || body["board_size"].(float64) != 10 {
		t.Errorf("config: status %d body %v", w.Code, body)
	}
}
