package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(3, time.Hour)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "bucket should be empty")
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 20*time.Millisecond)

	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, tb.Allow(), "bucket should refill after the period")
}

func TestTokenBucketReset(t *testing.T) {
	tb := NewTokenBucket(1, time.Hour)

	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	tb.Reset()
	assert.True(t, tb.Allow())
}

func TestTokenBucketWaitHonoursContext(t *testing.T) {
	tb := NewTokenBucket(1, time.Hour)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSlidingWindowAllow(t *testing.T) {
	sw := NewSlidingWindow(2, time.Hour)

	assert.True(t, sw.Allow())
	assert.True(t, sw.Allow())
	assert.False(t, sw.Allow(), "window should be full")
}

func TestSlidingWindowExpiry(t *testing.T) {
	sw := NewSlidingWindow(1, 20*time.Millisecond)

	require.True(t, sw.Allow())
	require.False(t, sw.Allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, sw.Allow(), "old request should have left the window")
}

func TestSlidingWindowWait(t *testing.T) {
	sw := NewSlidingWindow(1, 20*time.Millisecond)
	require.True(t, sw.Allow())

	start := time.Now()
	err := sw.Wait(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSlidingWindowReset(t *testing.T) {
	sw := NewSlidingWindow(1, time.Hour)

	require.True(t, sw.Allow())
	require.False(t, sw.Allow())

	sw.Reset()
	assert.True(t, sw.Allow())
}
