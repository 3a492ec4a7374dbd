package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAttemptLimiterBlocksAfterLimit(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Now()

	for i := 0; i < loginAttemptLimit; i++ {
		require.False(t, limiter.blocked("10.0.0.1|sam@example.com", now))
		limiter.recordFailure("10.0.0.1|sam@example.com", now)
	}
	require.True(t, limiter.blocked("10.0.0.1|sam@example.com", now))

	// Another key is unaffected.
	require.False(t, limiter.blocked("10.0.0.2|sam@example.com", now))
}

func TestAttemptLimiterClearResetsKey(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Now()

	for i := 0; i < loginAttemptLimit; i++ {
		limiter.recordFailure("key", now)
	}
	require.True(t, limiter.blocked("key", now))

	limiter.clear("key")
	require.False(t, limiter.blocked("key", now))
}

func TestAttemptLimiterWindowExpires(t *testing.T) {
	limiter := newAttemptLimiter()
	start := time.Now()

	for i := 0; i < loginAttemptLimit; i++ {
		limiter.recordFailure("key", start)
	}
	require.True(t, limiter.blocked("key", start))

	later := start.Add(loginAttemptWindow + time.Minute)
	require.False(t, limiter.blocked("key", later))
}
