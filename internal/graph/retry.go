package graph

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy indicates a retry policy failed validation.
var ErrInvalidPolicy = errors.New("graph: invalid retry policy")

// RetryPolicy governs one logical request: how often to retry, how long to
// back off and the per-attempt deadline. Immutable once handed to the client.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the first backoff interval; it doubles per retry.
	BaseDelay time.Duration
	// MaxDelay caps the backoff interval.
	MaxDelay time.Duration
	// Timeout is the per-attempt deadline. Expiry counts as retryable.
	Timeout time.Duration
	// MaxJitter bounds the random jitter added to every wait.
	MaxJitter time.Duration
	// RetryableStatuses overrides the retryable status set. Nil means the
	// default set (429, 502, 503, 504).
	RetryableStatuses []int
}

// DefaultRetryPolicy returns the policy used for Graph calls unless a caller
// overrides it.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Timeout:    30 * time.Second,
		MaxJitter:  time.Second,
	}
}

// Validate checks the policy for values the retry loop cannot work with.
func (p RetryPolicy) Validate() error {
	if p.MaxRetries < 1 {
		return fmt.Errorf("%w: MaxRetries must be at least 1, got %d", ErrInvalidPolicy, p.MaxRetries)
	}
	if p.BaseDelay <= 0 {
		return fmt.Errorf("%w: BaseDelay must be positive, got %s", ErrInvalidPolicy, p.BaseDelay)
	}
	if p.MaxDelay < p.BaseDelay {
		return fmt.Errorf("%w: MaxDelay %s is below BaseDelay %s", ErrInvalidPolicy, p.MaxDelay, p.BaseDelay)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("%w: Timeout must be positive, got %s", ErrInvalidPolicy, p.Timeout)
	}
	return nil
}

// retryable reports whether the status code should consume retry budget.
func (p RetryPolicy) retryable(statusCode int) bool {
	if p.RetryableStatuses == nil {
		return IsRetryableStatus(statusCode)
	}
	for _, code := range p.RetryableStatuses {
		if code == statusCode {
			return true
		}
	}
	return false
}

// nextDelay doubles the backoff interval, capped at MaxDelay.
func (p RetryPolicy) nextDelay(current time.Duration) time.Duration {
	next := current * 2
	if next > p.MaxDelay {
		next = p.MaxDelay
	}
	return next
}
