package gateway

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the expense API. Message carries the
// server's {message} body when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// ErrorMessage normalizes any gateway failure to a single human-readable
// string: the server-provided message verbatim when present, otherwise the
// operation-specific fallback. Transport failures always use the fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
