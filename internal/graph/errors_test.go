package graph

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{
			name:       "unauthorised",
			statusCode: http.StatusUnauthorized,
			expected:   ErrUnauthorised,
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			expected:   ErrForbidden,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			expected:   ErrNotFound,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			expected:   ErrRateLimited,
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			expected:   ErrBadRequest,
		},
		{
			name:       "internal server error",
			statusCode: http.StatusInternalServerError,
			expected:   ErrServerError,
		},
		{
			name:       "service unavailable",
			statusCode: http.StatusServiceUnavailable,
			expected:   ErrServerError,
		},
		{
			name:       "success returns nil",
			statusCode: http.StatusOK,
			expected:   nil,
		},
		{
			name:       "created returns nil",
			statusCode: http.StatusCreated,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapStatus(tt.statusCode)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStatusError_Unwrap(t *testing.T) {
	err := &StatusError{StatusCode: http.StatusNotFound, Body: []byte("gone")}

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestStatusError_TruncatesBody(t *testing.T) {
	body := make([]byte, 500)
	for i := range body {
		body[i] = 'x'
	}
	err := &StatusError{StatusCode: http.StatusBadRequest, Body: body}

	assert.Less(t, len(err.Error()), 300)
}

func TestRetriesExhaustedError_Unwrap(t *testing.T) {
	cause := &StatusError{StatusCode: http.StatusTooManyRequests}
	err := &RetriesExhaustedError{Attempts: 4, Err: cause}

	assert.ErrorIs(t, err, ErrRateLimited)

	var status *StatusError
	assert.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusTooManyRequests, status.StatusCode)
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		retryable  bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusInternalServerError, false},
		{http.StatusNotFound, false},
		{http.StatusBadRequest, false},
		{http.StatusOK, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.retryable, IsRetryableStatus(tt.statusCode), "status %d", tt.statusCode)
	}
}
