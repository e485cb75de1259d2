package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// UserMessage turns a fetch failure into text suitable for a banner or alert.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Check your connection and try again."
	}
	if errors.Is(err, context.Canceled) {
		return "The request was cancelled."
	}
	switch code := StatusCode(err); {
	case code == http.StatusBadRequest:
		return "The request was rejected by the server."
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "You are not authorized to perform this action."
	case code == http.StatusNotFound:
		return "The requested item was not found."
	case code == http.StatusTooManyRequests:
		return "Too many requests. Please wait a moment."
	case code >= 500:
		return "The server is unavailable. Please try again later."
	case code != 0:
		return fmt.Sprintf("Unexpected server response (%d).", code)
	}
	return "Network error. Check your connection and try again."
}
