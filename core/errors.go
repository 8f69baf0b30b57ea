package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Input validation errors
var (
	ErrInvalidRole       = errors.New("role must be farmer or buyer")
	ErrTokenRequired     = errors.New("token is required")
	ErrRecipientRequired = errors.New("recipient ID is required")
)

// Storage errors
var (
	ErrKeyNotFound = errors.New("key not found in storage")
)

// User-facing messages produced by UserMessage. One short string per
// failure class; screens present these verbatim.
const (
	MsgNetwork      = "Network error. Please check your internet connection."
	MsgTimeout      = "Request timeout. Please try again."
	MsgBadRequest   = "Invalid request. Please check your input."
	MsgUnauthorized = "Session expired. Please login again."
	MsgForbidden    = "You do not have permission to perform this action."
	MsgNotFound     = "Resource not found."
	MsgConflict     = "Conflict. Resource already exists."
	MsgValidation   = "Validation error. Please check your input."
	MsgServer       = "Server error. Please try again later."
	MsgUnavailable  = "Service unavailable. Please try again later."
	MsgDefault      = "Something went wrong. Please try again."
	MsgUnexpected   = "An unexpected error occurred."
)

// APIError is returned for any request that reached the backend and came
// back with an error status. Body holds the raw response for diagnostics;
// Message holds the backend-supplied message or error field when present.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// NewAPIError builds an APIError from a response status and body, pulling
// the backend message out of the body when one is present.
func NewAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	// Body may not be JSON at all; a missing message is fine.
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}

	return &APIError{StatusCode: statusCode, Message: msg, Body: body}
}

// UserMessage maps a request failure to one short presentable string.
// First match wins: timeout, no network, HTTP status, the error's own
// message, generic fallback. Pure apart from its inputs so every branch
// can be covered with synthetic errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if isTimeout(err) {
		return MsgTimeout
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return statusMessage(apiErr)
	}

	if isConnectionFailure(err) {
		return MsgNetwork
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnexpected
}

// statusMessage picks the per-status string. 400/404/409/422 prefer the
// backend-supplied message; 401/403/500/503 always use the fixed string
// (a stale backend message on those statuses is worse than the default).
func statusMessage(e *APIError) string {
	switch e.StatusCode {
	case 400:
		return orDefault(e.Message, MsgBadRequest)
	case 401:
		return MsgUnauthorized
	case 403:
		return MsgForbidden
	case 404:
		return orDefault(e.Message, MsgNotFound)
	case 409:
		return orDefault(e.Message, MsgConflict)
	case 422:
		return orDefault(e.Message, MsgValidation)
	case 500:
		return MsgServer
	case 503:
		return MsgUnavailable
	default:
		return orDefault(e.Message, MsgDefault)
	}
}

func orDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionFailure(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
