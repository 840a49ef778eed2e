package redis

import (
	"context"
	"fmt"
	"galpao/config"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 3 * time.Second

// New connects to the primary redis and exits the process when it stays
// unreachable after the configured retries.
func New(cfg *config.Config) *goRedis.Client {
	client, err := Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}

// Connect builds the client and pings it until it answers or retries run out.
func Connect(cfg *config.Config) (*goRedis.Client, error) {
	redisCfg := cfg.Cache.Redis
	primary := redisCfg.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:       net.JoinHostPort(primary.Host, primary.Port),
		Password:   primary.Password,
		DB:         primary.DB,
		ClientName: cfg.App.Name,
	})

	attempts := max(redisCfg.MaxRetry, 1)

	var err error

	for attempt := range attempts {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = client.Ping(ctx).Err()

		cancel()

		if err == nil {
			log.Info().
				Int("db", primary.DB).
				Str("host", primary.Host).
				Str("port", primary.Port).
				Msg("Connected to Redis")

			return client, nil
		}

		log.Error().Err(err).Int("attempt", attempt+1).Int("maxAttempts", attempts).Msg("Failed pinging Redis, retrying")

		if attempt+1 < attempts {
			time.Sleep(time.Duration(redisCfg.RetryWaitTime) * time.Second)
		}
	}

	_ = client.Close()

	return nil, fmt.Errorf("failed to reach redis after %d attempts: %w", attempts, err)
}
