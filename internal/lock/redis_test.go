package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a live server: GMAO_TEST_REDIS_ADDR=localhost:6379.
func TestRedisLocker_AcquireRelease(t *testing.T) {
	addr := os.Getenv("GMAO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GMAO_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := NewRedisClient(addr, "", 0)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	key := "gmao:test:" + uuid.NewString()
	l := NewRedisLocker(client)

	lease, err := l.Acquire(ctx, key, 10*time.Second)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, key, 10*time.Second)
	assert.ErrorIs(t, err, ErrHeld)

	require.NoError(t, lease.Release(ctx))

	again, err := l.Acquire(ctx, key, 10*time.Second)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}
