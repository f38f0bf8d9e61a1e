package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, time.Hour)
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(25 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed, "tokens must come back after the refill interval")
}

func TestTokenBucketNeverExceedsMax(t *testing.T) {
	bucket := NewTokenBucket(2, 5, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	bucket.Allow()

	assert.LessOrEqual(t, bucket.GetTokens(), 2)
}

func TestRateLimiterKeysPerUserAndAction(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("alice", "start_conversation")
		assert.True(t, allowed)
	}
	allowed, wait := limiter.Allow("alice", "start_conversation")
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	// Exhausting one action leaves the user's other actions alone.
	allowed, _ = limiter.Allow("alice", "send_message")
	assert.True(t, allowed)

	// And other users keep their own budget.
	allowed, _ = limiter.Allow("bob", "start_conversation")
	assert.True(t, allowed)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.Allow("alice", "send_message")

	limiter.buckets["alice:send_message"].lastRefill = time.Now().Add(-2 * time.Hour)
	limiter.Cleanup()

	assert.Empty(t, limiter.buckets)
}
