package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("X-Test", "1").
		Data(map[string]int{"n": 2}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("X-Test") != "1" {
		t.Errorf("custom header missing")
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["n"] != 2 {
		t.Errorf("Body = %q (%v)", w.Body.String(), err)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *JSONResponseBuilder
		status  int
		header  string
	}{
		{"not found", NotFoundError("missing"), http.StatusNotFound, ""},
		{"internal", InternalServerError("boom"), http.StatusInternalServerError, ""},
		{"unavailable", ServiceUnavailableError("loading", "2"), http.StatusServiceUnavailable, "Retry-After"},
		{"rate limited", TooManyRequestsError(), http.StatusTooManyRequests, "Retry-After"},
		{"method", MethodNotAllowedError("GET"), http.StatusMethodNotAllowed, "Allow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.RequestID("req-1").Write(w)

			if w.Code != tt.status {
				t.Errorf("Status code = %d, want %d", w.Code, tt.status)
			}
			if tt.header != "" && w.Header().Get(tt.header) == "" {
				t.Errorf("header %s not set", tt.header)
			}
			if w.Header().Get("Cache-Control") != "no-store" {
				t.Errorf("error responses must not be cached")
			}
			var body ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error == "" || body.RequestID != "req-1" {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestRequestIDIgnoresNonErrorBodies(t *testing.T) {
	w := httptest.NewRecorder()
	NewJSONResponse().Data([]int{1}).RequestID("x").Write(w)
	if got := w.Body.String(); got != "[1]\n" {
		t.Fatalf("Body = %q", got)
	}
}

func TestUnencodableBody(t *testing.T) {
	w := httptest.NewRecorder()
	NewJSONResponse().Data(make(chan int)).Write(w)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Status code = %d, want 500", w.Code)
	}
}
