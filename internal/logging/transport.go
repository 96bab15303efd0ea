package logging

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Transport is an http.RoundTripper that tags outgoing requests with a
// request id and logs their outcome. Headers and bodies are never logged.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

// NewTransport wraps base (http.DefaultTransport when nil)
func NewTransport(base http.RoundTripper, logger *Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = Discard()
	}
	return &Transport{Base: base, Logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(middleware.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	reqLogger := t.Logger.WithFields(map[string]any{
		"request_id": requestID,
		"method":     req.Method,
		"path":       req.URL.Path,
	})
	reqLogger.Debug("request started")

	resp, err := t.Base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		reqLogger.Error("request failed", "error", err.Error(), "duration_ms", duration)
		return nil, err
	}

	reqLogger.Log(req.Context(), clientLevel(resp.StatusCode), "request completed",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}

func clientLevel(status int) slog.Level {
	if status < 400 {
		return slog.LevelDebug
	}
	return levelForStatus(status)
}
