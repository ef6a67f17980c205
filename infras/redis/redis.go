package redis

import (
	"context"
	"hotel/config"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New dials the primary node and fails fast when it cannot be pinged.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary
	addr := net.JoinHostPort(primary.Host, primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     addr,
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to connect to redis")
	}

	log.Info().Str("addr", addr).Int("db", primary.DB).Msg("connected to redis")

	return client
}
