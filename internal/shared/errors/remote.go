package errors

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks failures to reach a remote collaborator at all.
var ErrUnavailable = errors.New("storefront API unreachable")

// HTTPError is an uncategorized non-2xx response from the storefront API.
type HTTPError struct {
	StatusCode int
	// Message is the server-supplied message, empty when the body carried none.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// ServerMessage extracts the server-supplied message from err, if any.
func ServerMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}
