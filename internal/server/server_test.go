package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/me/taskindex/internal/config"
	"github.com/me/taskindex/internal/index"
	"github.com/me/taskindex/internal/logging"
	"github.com/me/taskindex/internal/payload"
	"github.com/me/taskindex/internal/scheduler"
	"github.com/me/taskindex/pkg/model"
)

func testServer(t *testing.T) (*httptest.Server, *index.Index) {
	t.Helper()
	logger := logging.Discard()
	idx := index.New(model.DefaultPolicy(), payload.NewFuncRunner(), scheduler.DefaultConfig(), logger)
	srv := New(config.DefaultServerConfig(), idx, logger)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, idx
}

// doJSON posts body to path and decodes the envelope.
func doJSON(t *testing.T, method, url string, body any) (int, model.Response) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var envelope model.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, envelope
}

// dataMap re-decodes the envelope data as a map.
func dataMap(t *testing.T, envelope model.Response) map[string]any {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return m
}

func TestHealthEndpoints(t *testing.T) {
	ts, _ := testServer(t)

	for _, path := range []string{"/healthz", "/api/v1/health"} {
		status, envelope := doJSON(t, "GET", ts.URL+path, nil)
		if status != http.StatusOK {
			t.Errorf("%s: status = %d", path, status)
		}
		if envelope.Status != "ok" || envelope.RequestID == "" {
			t.Errorf("%s: envelope = %+v", path, envelope)
		}
		if got := dataMap(t, envelope)["status"]; got != "healthy" {
			t.Errorf("%s: health status = %v", path, got)
		}
	}
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	ts, _ := testServer(t)

	status, envelope := doJSON(t, "POST", ts.URL+"/api/v1/tasks/", map[string]any{
		"name":     "render",
		"type":     "gpu",
		"priority": "HIGH",
	})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d (%+v)", status, envelope)
	}
	taskID, _ := dataMap(t, envelope)["id"].(string)
	if taskID == "" {
		t.Fatal("created task has no id")
	}

	status, envelope = doJSON(t, "GET", ts.URL+"/api/v1/tasks/"+taskID, nil)
	if status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if got := dataMap(t, envelope)["status"]; got != "PENDING" {
		t.Errorf("task status = %v, want PENDING", got)
	}

	status, envelope = doJSON(t, "GET", ts.URL+"/api/v1/tasks/?status=PENDING", nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	var tasks []map[string]any
	raw, _ := json.Marshal(envelope.Data)
	if err := json.Unmarshal(raw, &tasks); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("pending tasks = %d, want 1", len(tasks))
	}

	status, _ = doJSON(t, "DELETE", ts.URL+"/api/v1/tasks/"+taskID, nil)
	if status != http.StatusOK {
		t.Fatalf("cancel status = %d", status)
	}
	_, envelope = doJSON(t, "GET", ts.URL+"/api/v1/tasks/"+taskID, nil)
	if got := dataMap(t, envelope)["status"]; got != "CANCELLED" {
		t.Errorf("task status after cancel = %v", got)
	}

	// A second cancel conflicts.
	status, envelope = doJSON(t, "DELETE", ts.URL+"/api/v1/tasks/"+taskID, nil)
	if status != http.StatusConflict {
		t.Errorf("second cancel status = %d, want 409", status)
	}
	if envelope.Error == nil || envelope.Error.Code != model.ErrConflict {
		t.Errorf("error = %+v", envelope.Error)
	}
}

func TestTaskEndpointErrors(t *testing.T) {
	ts, _ := testServer(t)

	status, envelope := doJSON(t, "GET", ts.URL+"/api/v1/tasks/task_nope", nil)
	if status != http.StatusNotFound || envelope.Error == nil || envelope.Error.Code != model.ErrNotFound {
		t.Errorf("missing task: status=%d error=%+v", status, envelope.Error)
	}

	status, _ = doJSON(t, "GET", ts.URL+"/api/v1/tasks/", nil)
	if status != http.StatusBadRequest {
		t.Errorf("list without status filter = %d, want 400", status)
	}

	status, _ = doJSON(t, "POST", ts.URL+"/api/v1/tasks/", map[string]any{"type": "cpu"})
	if status != http.StatusBadRequest {
		t.Errorf("create without name = %d, want 400", status)
	}
}

func TestResourceEndpoints(t *testing.T) {
	ts, _ := testServer(t)

	status, envelope := doJSON(t, "POST", ts.URL+"/api/v1/resources/", map[string]any{
		"name": "gpu-pool", "type": "gpu", "total_units": 4,
	})
	if status != http.StatusCreated {
		t.Fatalf("add status = %d", status)
	}
	resID, _ := dataMap(t, envelope)["id"].(string)

	status, envelope = doJSON(t, "GET", ts.URL+"/api/v1/resources/"+resID, nil)
	if status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if got := dataMap(t, envelope)["available_units"]; got != float64(4) {
		t.Errorf("available_units = %v, want 4", got)
	}

	status, _ = doJSON(t, "DELETE", ts.URL+"/api/v1/resources/"+resID, nil)
	if status != http.StatusOK {
		t.Fatalf("remove status = %d", status)
	}
	status, _ = doJSON(t, "GET", ts.URL+"/api/v1/resources/"+resID, nil)
	if status != http.StatusNotFound {
		t.Errorf("get after remove = %d, want 404", status)
	}
}

func TestNodeAndPlacementEndpoints(t *testing.T) {
	ts, _ := testServer(t)

	status, _ := doJSON(t, "POST", ts.URL+"/api/v1/nodes/", map[string]any{
		"id": "node-1", "location": "rack-a",
		"capabilities": map[string]any{"gpu": 4},
	})
	if status != http.StatusCreated {
		t.Fatalf("add node status = %d", status)
	}

	status, envelope := doJSON(t, "POST", ts.URL+"/api/v1/tasks/", map[string]any{
		"name": "render", "type": "gpu",
		"requirements": []map[string]any{{"type": "gpu", "amount": 2}},
	})
	if status != http.StatusCreated {
		t.Fatalf("create task status = %d", status)
	}
	taskID, _ := dataMap(t, envelope)["id"].(string)

	status, envelope = doJSON(t, "GET", fmt.Sprintf("%s/api/v1/tasks/%s/placement", ts.URL, taskID), nil)
	if status != http.StatusOK {
		t.Fatalf("placement status = %d", status)
	}
	advice := dataMap(t, envelope)
	if advice["found"] != true || advice["node_id"] != "node-1" {
		t.Errorf("advice = %v", advice)
	}
}

func TestStateExportImportAndValidate(t *testing.T) {
	ts, _ := testServer(t)

	if status, _ := doJSON(t, "POST", ts.URL+"/api/v1/resources/", map[string]any{
		"name": "cpu-pool", "type": "cpu_core", "total_units": 8,
	}); status != http.StatusCreated {
		t.Fatalf("add resource status = %d", status)
	}
	if status, _ := doJSON(t, "POST", ts.URL+"/api/v1/tasks/", map[string]any{"name": "job"}); status != http.StatusCreated {
		t.Fatalf("create task status = %d", status)
	}

	status, envelope := doJSON(t, "GET", ts.URL+"/api/v1/state/export", nil)
	if status != http.StatusOK {
		t.Fatalf("export status = %d", status)
	}
	state := dataMap(t, envelope)

	// Import the export into a second server.
	ts2, _ := testServer(t)
	status, _ = doJSON(t, "POST", ts2.URL+"/api/v1/state/import", state)
	if status != http.StatusOK {
		t.Fatalf("import status = %d", status)
	}

	status, envelope = doJSON(t, "GET", ts2.URL+"/api/v1/validate", nil)
	if status != http.StatusOK {
		t.Fatalf("validate status = %d", status)
	}
	if got := dataMap(t, envelope)["consistent"]; got != true {
		t.Errorf("consistent = %v after import", got)
	}

	status, envelope = doJSON(t, "GET", ts2.URL+"/api/v1/stats", nil)
	if status != http.StatusOK {
		t.Fatalf("stats status = %d", status)
	}
	if got := dataMap(t, envelope)["queued_tasks"]; got != float64(1) {
		t.Errorf("queued_tasks = %v, want 1", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}
