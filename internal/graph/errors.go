package graph

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for Microsoft Graph API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("graph: unauthorised")

	// ErrForbidden indicates the caller lacks permission for the resource.
	ErrForbidden = errors.New("graph: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrRateLimited indicates the request was throttled by Microsoft Graph.
	ErrRateLimited = errors.New("graph: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("graph: bad request")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("graph: server error")

	// ErrBudgetExhausted indicates the per-run request budget ran out.
	// Distinct from upstream failure: nothing was sent.
	ErrBudgetExhausted = errors.New("graph: request budget exhausted")

	// ErrTokenUnavailable indicates the token provider could not supply a
	// credential. Never retried.
	ErrTokenUnavailable = errors.New("graph: credential unavailable")
)

// WrapStatus converts an HTTP status code to an appropriate sentinel error.
func WrapStatus(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// StatusError is a non-2xx response from the upstream API. It carries the
// status and body so callers never have to re-read the wire.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("graph: request failed with status %d: %s", e.StatusCode, body)
}

// Unwrap maps the status onto the package sentinel errors so callers can use
// errors.Is against ErrRateLimited, ErrNotFound and friends.
func (e *StatusError) Unwrap() error {
	return WrapStatus(e.StatusCode)
}

// RetriesExhaustedError reports that every attempt allowed by the retry
// policy produced a retryable failure. Err is the last underlying cause.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("graph: retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// IsRetryableStatus reports whether the status code is worth retrying.
func IsRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
