package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", limit, window)
	require.NoError(t, err)

	return limiter, mr
}

func TestFixedWindowLimiter_BlocksOverLimit(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newLimiter(t, 2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 10, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := range 2 {
		ok, err := limiter.Allow(ctx, "ip-1")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "ip-2")
	require.NoError(t, err)
	assert.True(t, ok, "keys are counted separately")
}

func TestFixedWindowLimiter_NextWindowResets(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newLimiter(t, 1, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 10, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	ok, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(time.Minute)

	ok, err = limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowLimiter_FailsClosed(t *testing.T) {
	limiter, mr := newLimiter(t, 1, time.Second)
	mr.Close()

	ok, err := limiter.Allow(context.Background(), "ip-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewFixedWindowLimiter_RejectsBadSettings(t *testing.T) {
	_, err := NewFixedWindowLimiter(nil, "", 0, time.Second)
	assert.Error(t, err)

	_, err = NewFixedWindowLimiter(nil, "", 1, 0)
	assert.Error(t, err)

	_, err = NewFixedWindowLimiter(nil, "", 1, 500*time.Microsecond)
	assert.Error(t, err)

	limiter, err := NewFixedWindowLimiter(nil, "", 1, time.Millisecond)
	require.NoError(t, err)
	assert.NotNil(t, limiter)
}

func TestNoopLimiter(t *testing.T) {
	ok, err := NoopLimiter{}.Allow(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, ok)
}
