package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := &Client{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestClientSetGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "stats:test", "42", time.Hour))

	val, err := client.Get(ctx, "stats:test")
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}

func TestClientExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "stats:ttl", "soon gone", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := client.Get(ctx, "stats:ttl")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestClientDeletePattern(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "stats:a", "1", time.Hour))
	require.NoError(t, client.Set(ctx, "stats:b", "2", time.Hour))
	require.NoError(t, client.Set(ctx, "other:c", "3", time.Hour))

	require.NoError(t, client.DeletePattern(ctx, "stats:*"))

	_, err := client.Get(ctx, "stats:a")
	assert.ErrorIs(t, err, redis.Nil)
	val, err := client.Get(ctx, "other:c")
	require.NoError(t, err)
	assert.Equal(t, "3", val)
}
