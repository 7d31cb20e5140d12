package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pms/config"
	"pms/infras/otel/mocks"
	"pms/shared/cache"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaced(t *testing.T) {
	assert.Equal(t, "pms:night_audit:get:run-1", cache.Namespaced("pms", "night_audit:get:run-1"))
	assert.Equal(t, "night_audit:get:run-1", cache.Namespaced("", "night_audit:get:run-1"))
}

func TestIsMiss(t *testing.T) {
	assert.True(t, cache.IsMiss(fmt.Errorf("failed to get cache value: %w", cache.Nil)))
	assert.False(t, cache.IsMiss(fmt.Errorf("failed to get cache value: %w", context.DeadlineExceeded)))
	assert.False(t, cache.IsMiss(nil))
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.Namespace = "pms"

	redisCache := cache.NewRedisCache(client, cfg, mocks.NewOtel())
	ctx := context.Background()

	var value map[string]string

	err := redisCache.Get(ctx, "night_audit:get:run-1", &value)
	require.Error(t, err)
	assert.False(t, cache.IsMiss(err), "a connection failure must not look like a miss")

	assert.Error(t, redisCache.Save(ctx, "night_audit:get:run-1", map[string]string{"id": "run-1"}, 60))
	assert.Error(t, redisCache.Clear(ctx, "night_audit:list:*"))

	_, err = redisCache.Increment(ctx, "rate_limit:1.2.3.4", 60)
	assert.Error(t, err)
}

func TestRedisCache_SaveRejectsUnencodableValues(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	redisCache := cache.NewRedisCache(client, &config.Config{}, mocks.NewOtel())

	err := redisCache.Save(context.Background(), "key", make(chan int), 60)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal cache value")
}
