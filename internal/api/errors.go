package api

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

func NewAPIError(errType ErrorType, message string, cause error) *APIError {
	return &APIError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *APIError {
	return NewAPIError(ErrNetworkConnection, message, cause)
}

func NewTimeoutError(operation string) *APIError {
	return NewAPIError(ErrTimeout, fmt.Sprintf("operation %s timed out", operation), nil)
}

func NewDecodeError(message string, cause error) *APIError {
	return NewAPIError(ErrDecode, message, cause)
}

// newStatusError builds an APIError from a non-2xx response, keeping the
// backend's own message (when the body decoded) uninterpreted for callers.
func newStatusError(statusCode int, backendMessage string) *APIError {
	var errType ErrorType
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		errType = ErrUnauthorized
	case statusCode == http.StatusNotFound:
		errType = ErrNotFound
	case statusCode >= 400 && statusCode < 500:
		errType = ErrBadRequest
	default:
		errType = ErrServer
	}

	return &APIError{
		Type:           errType,
		Message:        fmt.Sprintf("request failed with status %d", statusCode),
		StatusCode:     statusCode,
		BackendMessage: backendMessage,
	}
}

// ClassifyError maps transport failures onto the APIError taxonomy.
func ClassifyError(err error) *APIError {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewAPIError(ErrTimeout, "request timed out", err)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	default:
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return NewAPIError(ErrTimeout, "request timed out", err)
		}
		return NewNetworkError("network request failed", err)
	}
}

// BackendMessage extracts the backend-provided message from an error, or ""
// when the error carries none. Callers combine this with their own fixed
// fallback string per operation.
func BackendMessage(err error) string {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.BackendMessage
	}
	return ""
}

func (e *APIError) IsAuthError() bool {
	return e.Type == ErrUnauthorized
}

// IsAuthError reports whether err carries an expired or rejected credential.
func IsAuthError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.IsAuthError()
}

// IsTransient reports whether err is a network or timeout failure that is
// worth surfacing with its own wording instead of an operation fallback.
func IsTransient(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return apiErr.Type == ErrNetworkConnection || apiErr.Type == ErrTimeout
}

// Message returns the user-facing wording for err, or "" for non-API errors.
func Message(err error) string {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.UserMessage()
	}
	return ""
}

func (e *APIError) UserMessage() string {
	if e.BackendMessage != "" {
		return e.BackendMessage
	}

	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrTimeout:
		return "Request timed out. Please try again."
	case ErrUnauthorized:
		return "Your session is no longer valid. Please sign in again."
	case ErrNotFound:
		return "The requested record was not found."
	case ErrBadRequest:
		return "The server rejected the request. Check the data and try again."
	case ErrServer:
		return "The server is temporarily unavailable. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}
