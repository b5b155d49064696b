package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter()

	require.NotNil(t, rl)
	assert.NotNil(t, rl.limiter)
}

func TestNewRateLimiterWithConfig(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{
		RequestsPerSecond: 5.0,
		BurstSize:         10,
	})

	require.NotNil(t, rl)
	assert.NotNil(t, rl.limiter)
}

func TestNewRateLimiterWithConfig_ZeroValuesUseDefaults(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{})

	require.NotNil(t, rl)
	assert.NotNil(t, rl.limiter)
	assert.True(t, rl.Allow())
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter()

	err := rl.Wait(context.Background())

	assert.NoError(t, err)
}

func TestRateLimiter_Wait_ContextCancelled(t *testing.T) {
	rl := NewRateLimiter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter()

	// First few requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(), "request %d should be allowed", i)
	}
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	rl := NewRateLimiter()

	rl.RecordRateLimitError(1)

	// Should not allow during the backoff
	assert.False(t, rl.Allow())

	// Wait for backoff to expire
	time.Sleep(1100 * time.Millisecond)

	assert.True(t, rl.Allow())
}

func TestRateLimiter_RecordRateLimitError_DefaultBackoff(t *testing.T) {
	rl := NewRateLimiter()

	// Zero seconds should fall back to the default backoff
	rl.RecordRateLimitError(0)

	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()

	expectedRetry := time.Now().Add(DefaultBackoffSeconds * time.Second)
	assert.WithinDuration(t, expectedRetry, retryAt, 2*time.Second)
}

func TestRateLimiter_RecordRateLimitError_NegativeBackoff(t *testing.T) {
	rl := NewRateLimiter()

	rl.RecordRateLimitError(-5)

	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()

	expectedRetry := time.Now().Add(DefaultBackoffSeconds * time.Second)
	assert.WithinDuration(t, expectedRetry, retryAt, 2*time.Second)
}
