package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pms/config"
	"pms/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	otelCacheHitAttribute = "cache.hit"
	scanBatchSize         = 100
)

// Nil is returned (wrapped) by Get on a cache miss.
var Nil = redis.Nil

// IsMiss reports whether err is a cache miss rather than a redis failure.
func IsMiss(err error) bool {
	return errors.Is(err, Nil)
}

// RedisCache stores JSON values under keys shared by every replica. Keys are namespaced
// internally, callers never see the namespace.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every key matching pattern.
	Clear(ctx context.Context, pattern string) error
	// Increment adds one to the counter at key and returns the new value. The counter
	// expires window seconds after its first increment.
	Increment(ctx context.Context, key string, window int) (int64, error)
}

type redisCache struct {
	client    *redis.Client
	namespace string
	otel      otel.Otel
}

func NewRedisCache(client *redis.Client, cfg *config.Config, ot otel.Otel) RedisCache {
	return &redisCache{
		client:    client,
		namespace: cfg.Cache.Namespace,
		otel:      ot,
	}
}

// Namespaced prefixes key with namespace. An empty namespace leaves key untouched.
func Namespaced(namespace, key string) string {
	if namespace == "" {
		return key
	}

	return namespace + ":" + key
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope, string) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	key = Namespaced(cache.namespace, key)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope, key
}

// Clear scans in batches and unlinks each batch so large key sets are freed asynchronously.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope, pattern := cache.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		cursor  uint64
		removed int64
	)

	for {
		keys, next, err := cache.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			count, err := cache.client.Unlink(ctx, keys...).Result()
			if err != nil {
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to unlink cache keys")

				return fmt.Errorf("failed to delete cache values: %w", err)
			}

			removed += count
		}

		if next == 0 {
			break
		}

		cursor = next
	}

	log.Debug().Str("pattern", pattern).Int64("removed", removed).Msg("cache cleared")

	return nil
}

func (cache *redisCache) Increment(ctx context.Context, key string, window int) (count int64, err error) {
	ctx, scope, key := cache.scope(ctx, "Increment", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var incr *redis.IntCmd

	_, err = cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Second*time.Duration(window))

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment counter")

		return 0, fmt.Errorf("failed to increment cache counter: %w", err)
	}

	return incr.Val(), nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope, key := cache.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache value")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the JSON stored at key into value. A miss wraps Nil and is not traced as
// an error.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope, key := cache.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := cache.client.Get(ctx, key).Bytes()
	scope.SetAttribute(otelCacheHitAttribute, err == nil)

	if err != nil {
		if !IsMiss(err) {
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = json.Unmarshal(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache value")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save stores value as JSON for duration seconds.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope, key := cache.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache value")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, key, raw, time.Second*time.Duration(duration)).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache value")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}
