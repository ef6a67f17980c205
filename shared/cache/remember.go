package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Remember reads key through the cache. On a miss it calls load and stores the result in the background.
// Cache errors are logged, never returned, and load errors are returned as is.
func Remember[T any](ctx context.Context, c RedisCache, key string, ttl int, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("key", key).Msg("cache hit")

		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	go func(ctx context.Context) {
		if err := c.Save(ctx, key, value, ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to cache value")
		}
	}(context.WithoutCancel(ctx))

	return value, nil
}
