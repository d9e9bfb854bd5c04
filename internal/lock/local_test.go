package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SecondAcquireFailsUntilRelease(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	lease, err := l.Acquire(ctx, "gmao:generate", time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, lease.Token)

	_, err = l.Acquire(ctx, "gmao:generate", time.Minute)
	assert.ErrorIs(t, err, ErrHeld)

	require.NoError(t, lease.Release(ctx))
	require.NoError(t, lease.Release(ctx))

	again, err := l.Acquire(ctx, "gmao:generate", time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, lease.Token, again.Token)
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	_, err := l.Acquire(ctx, "a", time.Minute)
	require.NoError(t, err)
	_, err = l.Acquire(ctx, "b", time.Minute)
	assert.NoError(t, err)
}

func TestLocalLocker_ExpiredLeaseCanBeTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.clock = func() time.Time { return now }

	stale, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	fresh, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	// The stale holder must not free the new lease.
	require.NoError(t, stale.Release(ctx))
	_, err = l.Acquire(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrHeld)

	require.NoError(t, fresh.Release(ctx))
}

func TestLocalLocker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocalLocker().Acquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
