// Package graph provides a typed HTTP client for the Microsoft Graph API:
// client-credentials token acquisition, directory lookups, and drive quota
// fetches, with error classification per upstream status code.
package graph

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, graph.ErrNotFound) to check.
var (
	ErrUnauthorized = errors.New("graph: unauthorized")
	ErrForbidden    = errors.New("graph: forbidden")
	ErrNotFound     = errors.New("graph: not found")
	ErrUpstream     = errors.New("graph: upstream unavailable")
	ErrRequest      = errors.New("graph: request failed")
)

// ErrMissingCredentials is returned when any of tenant ID, client ID, or
// client secret is empty. Checked before any network call.
var ErrMissingCredentials = errors.New("graph: missing credentials")

// APIError wraps a sentinel error with the HTTP status code, request ID,
// and the API error message body for debugging.
type APIError struct {
	StatusCode int
	RequestID  string
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("graph: HTTP %d (request-id: %s): %s", e.StatusCode, e.RequestID, e.Message)
	}

	return fmt.Sprintf("graph: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Statuses the API distinguishes (401/403/404) keep their own sentinel;
// 5xx maps to ErrUpstream and everything else collapses to ErrRequest.
func classifyStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= http.StatusInternalServerError:
		return ErrUpstream
	default:
		return ErrRequest
	}
}
