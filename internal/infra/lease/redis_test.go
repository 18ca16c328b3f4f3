//go:build e2e

package lease

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewClient(ctx, endpoint, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLease(t *testing.T) {
	client := startRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	first := NewRedisLease(client, "", logger)
	second := NewRedisLease(client, "", logger)

	release, ok, err := first.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = second.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "lease is held")

	release(ctx)

	releaseSecond, ok, err := second.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "lease was released")

	// A stale release must not drop someone else's lease.
	release(ctx)
	_, ok, err = first.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	releaseSecond(ctx)
}

func TestRedisLease_Expires(t *testing.T) {
	client := startRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	l := NewRedisLease(client, "test:lease", logger)

	_, ok, err := l.Acquire(ctx, 200*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		release, ok, err := l.Acquire(ctx, time.Minute)
		if err != nil || !ok {
			return false
		}
		release(ctx)
		return true
	}, 5*time.Second, 100*time.Millisecond)
}
