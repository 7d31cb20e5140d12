package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"pms/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Options maps the primary node configuration to client options.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary
	dialTimeout := time.Duration(config.Cache.Redis.DialTimeoutSeconds) * time.Second

	return &goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		PoolSize:    primary.PoolSize,
		DialTimeout: dialTimeout,
	}
}

// Ping checks the client within the configured dial timeout.
func Ping(ctx context.Context, client *goRedis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, max(client.Options().DialTimeout, time.Second))
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis at %s: %w", client.Options().Addr, err)
	}

	return nil
}

func New(config *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(config))

	if err := Ping(context.Background(), client); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", config.Cache.Redis.Primary.DB).
		Str("addr", client.Options().Addr).
		Int("poolSize", client.Options().PoolSize).
		Msg("Connected to Redis")

	return client
}
