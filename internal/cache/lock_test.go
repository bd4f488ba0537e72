package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLockerExclusive(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	ok, err := l.TryLock(ctx, "dispatch:home", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.TryLock(ctx, "dispatch:home", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = l.TryLock(ctx, "dispatch:contacts", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, l.Unlock(ctx, "dispatch:home"))
	ok, err = l.TryLock(ctx, "dispatch:home", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryLockerExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLocker()
	l.now = func() time.Time { return now }

	ok, _ := l.TryLock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = l.TryLock(ctx, "k", time.Second)
	require.True(t, ok, "expired lock should be reacquirable")
}

func TestMemoryLockerWithoutTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLocker()
	l.now = func() time.Time { return now }

	ok, _ := l.TryLock(ctx, "k", 0)
	require.True(t, ok)

	now = now.Add(time.Hour)
	ok, _ = l.TryLock(ctx, "k", time.Second)
	require.False(t, ok)
}

func TestUnlockMissingKey(t *testing.T) {
	require.NoError(t, NewMemoryLocker().Unlock(context.Background(), "missing"))
}
