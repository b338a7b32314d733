//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

func setupRedisContainer(t *testing.T) (*goredis.Client, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())

	cleanup := func() {
		_ = client.Close()
		container.Terminate(ctx)
	}
	return client, cleanup
}

func TestStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewStore(client, "test:", time.Minute)

	_, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, ports.KeyToken, "tok"))
	v, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok", v)

	ttl, err := client.TTL(ctx, "test:"+ports.KeyToken).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, ports.KeyToken))
	_, ok, err = store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)
}
