package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, NewServer(0), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Expected ok status, got %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, NewServer(0), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var scenes []SceneResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(scenes) != 5 {
		t.Fatalf("Expected 5 scenes, got %d", len(scenes))
	}
	for _, sc := range scenes {
		if sc.ID == "" || sc.Name == "" || sc.Primitives == 0 {
			t.Errorf("Expected complete scene info, got %+v", sc)
		}
	}
}

func TestParseParams(t *testing.T) {
	values := url.Values{"n": {"5"}, "f": {"0.5"}, "b": {"true"}, "bad": {"x"}, "nan": {"NaN"}}

	if v, err := parseIntParam(values, "n", 1, 0, 10); err != nil || v != 5 {
		t.Errorf("Expected 5, got %d (%v)", v, err)
	}
	if v, err := parseIntParam(values, "missing", 7, 0, 10); err != nil || v != 7 {
		t.Errorf("Expected default 7, got %d (%v)", v, err)
	}
	if _, err := parseIntParam(values, "n", 1, 6, 10); err == nil {
		t.Error("Expected range error")
	}
	if _, err := parseIntParam(values, "bad", 1, 0, 10); err == nil {
		t.Error("Expected parse error")
	}
	if v, err := parseFloatParam(values, "f", 1, 0, 1); err != nil || v != 0.5 {
		t.Errorf("Expected 0.5, got %f (%v)", v, err)
	}
	if _, err := parseFloatParam(values, "nan", 1, 0, 1); err == nil {
		t.Error("Expected NaN to be rejected")
	}
	if v, err := parseBoolParam(values, "b", false); err != nil || !v {
		t.Errorf("Expected true, got %v (%v)", v, err)
	}
	if _, err := parseBoolParam(values, "bad", false); err == nil {
		t.Error("Expected parse error")
	}
}

func TestHandleRender(t *testing.T) {
	rec := get(t, NewServer(0), "/api/render?scene=veach&width=32&height=32&passes=2&iterations=1&overlay=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected event stream, got %s", ct)
	}

	body := rec.Body.String()
	if n := strings.Count(body, "event: passComplete\n"); n != 2 {
		t.Errorf("Expected 2 pass events, got %d", n)
	}
	if !strings.HasSuffix(body, "event: complete\ndata: Rendering completed\n\n") {
		t.Errorf("Expected stream to end with a complete event, got tail %q", body[max(0, len(body)-80):])
	}

	// Decode the first pass update
	for _, line := range strings.Split(body, "\n") {
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok || !strings.Contains(data, "passNumber") {
			continue
		}
		var update PassUpdate
		if err := json.Unmarshal([]byte(data), &update); err != nil {
			t.Fatalf("Failed to decode pass update: %v", err)
		}
		if update.PassNumber != 1 || update.TotalPasses != 2 || update.ImageData == "" {
			t.Errorf("Unexpected first pass update: %+v", update)
		}
		break
	}
}

func TestHandleRender_BadRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"width too small", "width=1", http.StatusBadRequest},
		{"bad exposure", "exposure=abc", http.StatusBadRequest},
		{"negative path length", "pathLength=-1", http.StatusBadRequest},
		{"unknown scene", "scene=nonexistent", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, NewServer(0), "/api/render?"+tt.query)
			if rec.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		// veach at 100x100 pixels maps one pixel to one scene unit
		{"light", "x=20&y=20", "light"},
		{"camera", "x=95&y=50", "camera"},
		{"floor", "x=50&y=95", "primitive"},
		{"empty space", "x=50&y=50", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, NewServer(0), "/api/inspect?scene=veach&width=100&height=100&"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var response InspectResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Picked != tt.expected {
				t.Errorf("Expected pick '%s', got '%s'", tt.expected, response.Picked)
			}
		})
	}
}

func TestHandleInspect_Primitive(t *testing.T) {
	rec := get(t, NewServer(0), "/api/inspect?scene=veach&width=100&height=100&x=50&y=95")

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.GeometryType != "segment" || response.MaterialType != "diffuse" {
		t.Errorf("Expected diffuse segment, got %s %s", response.MaterialType, response.GeometryType)
	}
	if response.CameraRay == nil || !response.CameraRay.Hit {
		t.Error("Expected camera ray towards the floor to hit")
	}
}

func TestHandleInspect_BadRequest(t *testing.T) {
	for _, query := range []string{"x=1", "x=1&y=500", "x=a&y=1"} {
		rec := get(t, NewServer(0), "/api/inspect?"+query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Query %s: expected status 400, got %d", query, rec.Code)
		}
	}
}
