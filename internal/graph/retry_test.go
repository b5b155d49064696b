package graph

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()

	assert.NoError(t, p.Validate())
	assert.Equal(t, 3, p.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, p.BaseDelay)
	assert.Equal(t, 10*time.Second, p.MaxDelay)
}

func TestRetryPolicy_Validate(t *testing.T) {
	valid := RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Second,
		Timeout:    time.Second,
	}

	tests := []struct {
		name   string
		mutate func(*RetryPolicy)
		ok     bool
	}{
		{name: "valid", mutate: func(*RetryPolicy) {}, ok: true},
		{name: "zero retries", mutate: func(p *RetryPolicy) { p.MaxRetries = 0 }, ok: false},
		{name: "negative retries", mutate: func(p *RetryPolicy) { p.MaxRetries = -1 }, ok: false},
		{name: "zero base delay", mutate: func(p *RetryPolicy) { p.BaseDelay = 0 }, ok: false},
		{name: "max delay below base", mutate: func(p *RetryPolicy) { p.MaxDelay = time.Microsecond }, ok: false},
		{name: "zero timeout", mutate: func(p *RetryPolicy) { p.Timeout = 0 }, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPolicy)
			}
		})
	}
}

func TestRetryPolicy_Retryable_DefaultSet(t *testing.T) {
	p := DefaultRetryPolicy()

	assert.True(t, p.retryable(http.StatusTooManyRequests))
	assert.True(t, p.retryable(http.StatusServiceUnavailable))
	assert.False(t, p.retryable(http.StatusInternalServerError))
	assert.False(t, p.retryable(http.StatusNotFound))
}

func TestRetryPolicy_Retryable_Override(t *testing.T) {
	p := DefaultRetryPolicy()
	p.RetryableStatuses = []int{http.StatusInternalServerError}

	assert.True(t, p.retryable(http.StatusInternalServerError))
	assert.False(t, p.retryable(http.StatusTooManyRequests))
}

func TestRetryPolicy_NextDelay(t *testing.T) {
	p := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: 350 * time.Millisecond}

	d := p.BaseDelay
	d = p.nextDelay(d)
	assert.Equal(t, 200*time.Millisecond, d)
	d = p.nextDelay(d)
	assert.Equal(t, 350*time.Millisecond, d, "doubling is capped at MaxDelay")
	d = p.nextDelay(d)
	assert.Equal(t, 350*time.Millisecond, d, "stays at the cap")
}
