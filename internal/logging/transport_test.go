package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func TestTransportSetsRequestIDAndLogs(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.RequestIDHeader)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	client := &http.Client{Transport: NewTransport(nil, New(&buf, false))}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/users/tasks", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer secret-token")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if seen == "" {
		t.Fatal("expected request id header on the wire")
	}
	if req.Header.Get(middleware.RequestIDHeader) != "" {
		t.Fatal("caller's request was modified")
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "WARN" {
		t.Fatalf("expected WARN for 404, got %v", entry["level"])
	}
	if entry["request_id"] != seen {
		t.Fatalf("logged request id %v, sent %q", entry["request_id"], seen)
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Fatalf("unexpected status %v", entry["status"])
	}
	if strings.Contains(buf.String(), "secret-token") {
		t.Fatal("token leaked into logs")
	}
}

func TestTransportKeepsExistingRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.RequestIDHeader)
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: NewTransport(nil, nil)}
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if seen != "fixed-id" {
		t.Fatalf("expected fixed-id, got %q", seen)
	}
}

func TestRequestLoggerSharesClientRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		GetLoggerFromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: NewTransport(nil, nil)}
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/boom", nil)
	req.Header.Set(middleware.RequestIDHeader, "shared-id")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	var last map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &last); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if last["level"] != "ERROR" || last["request_id"] != "shared-id" {
		t.Fatalf("unexpected completion entry: %v", last)
	}
}
