package client

import (
	"errors"
	"net/http"
)

// Kind classifies a failed operation so callers can branch on structure
// instead of matching message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalid
	KindServer
	KindNetwork
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Fallback messages. Task operations always use these; auth operations use
// them only when the response carries no usable detail.
const (
	msgRegisterFailed = "Registration failed"
	msgLoginFailed    = "Login failed"
	msgFetchTasks     = "Failed to fetch tasks"
	msgFetchTask      = "Failed to fetch task"
	msgCreateTask     = "Failed to create task"
	msgUpdateTask     = "Failed to update task"
	msgDeleteTask     = "Failed to delete task"
	msgToggleTask     = "Failed to toggle task"
)

// Error is returned by every Client operation that fails
type Error struct {
	Op         string // e.g. "login", "create_task"
	Kind       Kind
	StatusCode int    // 0 when no response was received
	Message    string // user-facing message
	Err        error  // underlying cause, if any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindUnknown when err is not a *Error
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsUnauthorized reports whether err means the session is missing or expired
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindInvalid
	default:
		return KindUnknown
	}
}

func statusError(op string, status int, message string) *Error {
	return &Error{Op: op, Kind: kindForStatus(status), StatusCode: status, Message: message}
}

func networkError(op, message string, err error) *Error {
	return &Error{Op: op, Kind: KindNetwork, Message: message, Err: err}
}

func decodeError(op string, status int, message string, err error) *Error {
	return &Error{Op: op, Kind: KindDecode, StatusCode: status, Message: message, Err: err}
}

func validationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Message: err.Error(), Err: err}
}
