package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	s, err := NewServer(Config{
		Addr: "localhost:0",
		CORS: CORSConfig{TrustedOrigins: []string{"http://localhost:3000"}},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("cannot create server: %v", err)
	}

	return s.routes()
}

type testResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data"`
	Metadata map[string]any `json:"metadata"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, testResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var res testResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
	}

	return rec.Code, res
}

func TestHealthCheck(t *testing.T) {
	status, res := do(t, newTestServer(t), http.MethodGet, "/api/healthcheck", "")

	if status != http.StatusOK || !res.Success || res.Message != "OK" {
		t.Fatalf("unexpected response: %d %+v", status, res)
	}
}

func TestCompileHandler(t *testing.T) {
	tests := []struct {
		body          string
		status        int
		success       bool
		unitStatus    string
		statements    int
		messages      int
		invalidFields []string
	}{
		{
			body:       `{"name": "001.dbir", "source": "Delete Table(s.t)\nRename Table(a.b), (a.c)"}`,
			status:     http.StatusOK,
			success:    true,
			unitStatus: "OK",
			statements: 2,
		},
		{
			body:       `{"source": "Add Column(s.t.c) { data_type: Int32[456], visible: None }"}`,
			status:     http.StatusUnprocessableEntity,
			unitStatus: "FAILED",
			messages:   1,
		},
		{
			body:       `{"source": "New Table(s.t) {}"}`,
			status:     http.StatusNotImplemented,
			unitStatus: "UNSUPPORTED",
			messages:   1,
		},
		{
			body:          `{"name": "x", "source": "   "}`,
			status:        http.StatusUnprocessableEntity,
			invalidFields: []string{"source"},
		},
		{
			body:          `{"source": "Delete Table(s.t)", "dialect": "postgres"}`,
			status:        http.StatusUnprocessableEntity,
			invalidFields: []string{"dialect"},
		},
		{
			body:          `{"source": 42}`,
			status:        http.StatusUnprocessableEntity,
			invalidFields: []string{"source"},
		},
		{body: `{"source": "Delete`, status: http.StatusBadRequest},
		{body: ``, status: http.StatusBadRequest},
		{body: `{"source": "a"} {"source": "b"}`, status: http.StatusBadRequest},
	}

	h := newTestServer(t)

	for i, tt := range tests {
		status, res := do(t, h, http.MethodPost, "/api/compile", tt.body)

		if status != tt.status {
			t.Fatalf("#%d - expected status %d, got %d: %+v", i, tt.status, status, res)
		}
		if res.Success != tt.success {
			t.Fatalf("#%d - expected success %t, got %t", i, tt.success, res.Success)
		}

		for _, field := range tt.invalidFields {
			fields, _ := res.Metadata["fields"].(map[string]any)
			if _, ok := fields[field]; !ok {
				t.Fatalf("#%d - expected field %q to be reported, got %v", i, field, res.Metadata)
			}
		}

		if tt.unitStatus == "" {
			continue
		}

		unit, ok := res.Data["unit"].(map[string]any)
		if !ok {
			t.Fatalf("#%d - expected a unit in the response, got %v", i, res.Data)
		}
		if unit["status"] != tt.unitStatus {
			t.Fatalf("#%d - expected unit status %s, got %v", i, tt.unitStatus, unit["status"])
		}
		if statements, _ := unit["statements"].([]any); len(statements) != tt.statements {
			t.Fatalf("#%d - expected %d statements, got %v", i, tt.statements, unit["statements"])
		}
		if messages, _ := unit["messages"].([]any); len(messages) != tt.messages {
			t.Fatalf("#%d - expected %d messages, got %v", i, tt.messages, unit["messages"])
		}
	}
}

func TestCompileHandlerMethod(t *testing.T) {
	status, _ := do(t, newTestServer(t), http.MethodGet, "/api/compile", "")

	if status != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, status)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"http://evil.example", false},
	}

	for i, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/compile", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin")
		if tt.allowed && (got != tt.origin || rec.Code != http.StatusOK) {
			t.Fatalf("#%d - expected origin to be allowed, got %q with status %d", i, got, rec.Code)
		}
		if !tt.allowed && got != "" {
			t.Fatalf("#%d - expected origin to be rejected, got %q", i, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg   Config
		valid bool
	}{
		{Config{Addr: ":8000"}, true},
		{Config{Addr: ":8000", CertFile: "c.pem", KeyFile: "k.pem"}, true},
		{Config{}, false},
		{Config{Addr: ":8000", CertFile: "c.pem"}, false},
	}

	for i, tt := range tests {
		if err := tt.cfg.Validate(); (err == nil) != tt.valid {
			t.Fatalf("#%d - expected valid=%t, got %v", i, tt.valid, err)
		}
	}
}
