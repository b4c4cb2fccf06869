package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/douglasalbuquerque/vision-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Address: mr.Addr(), PoolSize: 2}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestIncrWithTTLExpiresWindow(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	key := client.AuthFailureKey("10.0.0.2")

	count, err := client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(30 * time.Second)
	count, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 30*time.Second, mr.TTL(key), "ttl is only set on the first increment")

	mr.FastForward(31 * time.Second)
	count, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "window resets after ttl")
}

func TestCountAndDel(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	key := client.AuthFailureKey("10.0.0.1")

	n, err := client.Count(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, n, "absent key counts as zero")

	_, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	_, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)

	n, err = client.Count(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, client.Del(ctx, key))
	n, err = client.Count(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountRejectsNonInteger(t *testing.T) {
	client, mr := newTestClient(t)
	require.NoError(t, mr.Set("vision:auth_failures:x", "abc"))
	_, err := client.Count(context.Background(), "vision:auth_failures:x")
	assert.Error(t, err)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "vision:auth_failures:10.0.0.1", client.AuthFailureKey(" 10.0.0.1 "))
	assert.Equal(t, "vision:auth_failures", client.AuthFailureKey(""))
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	ctx := context.Background()
	assert.Error(t, client.Ping(ctx))
	_, err := client.IncrWithTTL(ctx, "k", time.Second)
	assert.Error(t, err)
	assert.NoError(t, client.Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@cache:6380/3", PoolSize: 7})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)

	_, err = optionsFromConfig(config.RedisConfig{URL: "://bad"})
	assert.Error(t, err)
}
