package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("dial tcp: connection refused")

func newTestBreaker(maxFailures int, reset time.Duration) (*CircuitBreaker, *time.Time) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("test", maxFailures, reset)
	cb.now = func() time.Time { return now }
	return cb, &now
}

func failing(calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		return errRedisDown
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	cb, _ := newTestBreaker(3, time.Minute)
	calls := 0

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(ctx, failing(&calls)), errRedisDown)
	}
	require.Equal(t, StateOpen, cb.State())

	err := cb.Call(ctx, failing(&calls))
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.Equal(t, 3, calls, "open breaker must not run the operation")
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	ctx := context.Background()
	cb, _ := newTestBreaker(2, time.Minute)
	calls := 0

	require.Error(t, cb.Call(ctx, failing(&calls)))
	require.NoError(t, cb.Call(ctx, func(context.Context) error { return nil }))
	require.Error(t, cb.Call(ctx, failing(&calls)))
	require.Equal(t, StateClosed, cb.State())
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	ctx := context.Background()
	cb, now := newTestBreaker(1, 10*time.Second)
	calls := 0

	require.Error(t, cb.Call(ctx, failing(&calls)))
	require.Equal(t, StateOpen, cb.State())

	*now = now.Add(10 * time.Second)
	require.NoError(t, cb.Call(ctx, func(context.Context) error { return nil }))
	require.Equal(t, StateClosed, cb.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	cb, now := newTestBreaker(1, 10*time.Second)
	calls := 0

	require.Error(t, cb.Call(ctx, failing(&calls)))
	*now = now.Add(10 * time.Second)

	require.ErrorIs(t, cb.Call(ctx, failing(&calls)), errRedisDown)
	require.Equal(t, StateOpen, cb.State())
	require.ErrorIs(t, cb.Call(ctx, failing(&calls)), ErrCircuitOpen)
	require.Equal(t, 2, calls)
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	ctx := context.Background()
	cb, _ := newTestBreaker(1, time.Minute)

	err := cb.Call(ctx, func(context.Context) error { return context.Canceled })
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, StateClosed, cb.State())
}

func TestNilBreakerRunsOperation(t *testing.T) {
	var cb *CircuitBreaker
	ran := false
	require.NoError(t, cb.Call(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}))
	require.True(t, ran)
}

func TestRedisLockerFailsFastWhenBreakerOpen(t *testing.T) {
	ctx := context.Background()
	client := redislib.NewClient(&redislib.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cb, _ := newTestBreaker(2, time.Minute)
	l := NewRedisLocker(client, cb)

	for i := 0; i < 2; i++ {
		_, err := l.TryLock(ctx, "dispatch:home", time.Minute)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCircuitOpen)
	}

	ok, err := l.TryLock(ctx, "dispatch:home", time.Minute)
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.False(t, ok)
	require.ErrorIs(t, l.Unlock(ctx, "dispatch:home"), ErrCircuitOpen)
}
