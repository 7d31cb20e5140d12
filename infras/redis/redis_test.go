package redis_test

import (
	"context"
	"testing"
	"time"

	"pms/config"
	"pms/infras/redis"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "cache.internal"
	cfg.Cache.Redis.Primary.Port = "6379"
	cfg.Cache.Redis.Primary.DB = 2
	cfg.Cache.Redis.Primary.PoolSize = 20
	cfg.Cache.Redis.DialTimeoutSeconds = 3

	options := redis.Options(cfg)

	assert.Equal(t, "cache.internal:6379", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, 20, options.PoolSize)
	assert.Equal(t, 3*time.Second, options.DialTimeout)
}

func TestPing_Unreachable(t *testing.T) {
	client := goRedis.NewClient(&goRedis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	err := redis.Ping(context.Background(), client)

	assert.ErrorContains(t, err, "127.0.0.1:1")
}
