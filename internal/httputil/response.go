package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the API error shape: {"detail": "..."}.
// Validation failures put a list of field errors in detail instead of a string.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// FieldError is one entry of a validation failure detail list
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondError sends {"detail": message} with the given status code
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Detail: message}, statusCode)
}

// RespondValidationError sends a 422 with a list of field errors
func RespondValidationError(w http.ResponseWriter, errs ...FieldError) {
	RespondJSON(w, ErrorResponse{Detail: errs}, http.StatusUnprocessableEntity)
}

// DetailMessage extracts a string detail from an error body.
// It reports false for non-JSON bodies, a missing detail, or a non-string detail.
func DetailMessage(body []byte) (string, bool) {
	var resp struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(resp.Detail, &msg); err != nil || msg == "" {
		return "", false
	}
	return msg, true
}
