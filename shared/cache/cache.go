package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100
	Nil                   = redis.Nil
)

// RedisCache stores JSON-encoded values with a TTL in seconds. Get returns an error wrapping Nil on a miss.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	// Take reads and removes key in one step, so only one caller can ever observe the value.
	Take(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string, window int) (int64, error)
}

type redisCache struct {
	client redis.UniversalClient
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Clear deletes every key matching pattern, scanning in batches so large keyspaces are not blocked.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cursor uint64

	for {
		var keys []string

		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			log.Error().Err(err).Str("pattern", pattern).Msg("failed to scan cache keys")

			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = c.client.Unlink(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("pattern", pattern).Int("keys", len(keys)).Msg("failed to unlink cache keys")

				return fmt.Errorf("failed to delete cache values: %w", err)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) Exists(ctx context.Context, key string) (exists bool, err error) {
	ctx, scope := c.scope(ctx, "Exists", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to check cache key")

		return false, fmt.Errorf("failed to check cache key: %w", err)
	}

	return count > 0, nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache key")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()

	return c.read(scope, key, c.client.Get(ctx, key), value)
}

func (c *redisCache) Take(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Take", key)
	defer scope.End()

	return c.read(scope, key, c.client.GetDel(ctx, key), value)
}

// read decodes a string reply into value. A plain *string receives the raw bytes.
func (c *redisCache) read(scope otel.Scope, key string, cmd *redis.StringCmd, value any) error {
	raw, err := cmd.Bytes()
	if err != nil {
		if !errors.Is(err, Nil) {
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if target, ok := value.(*string); ok {
		*target = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to decode cache value")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var payload []byte

	if text, ok := value.(string); ok {
		payload = []byte(text)
	} else if payload, err = json.Marshal(value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode cache value")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache value")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache value saved")

	return nil
}

// Incr bumps a fixed-window counter. The window starts with the first increment and is not extended by later ones.
func (c *redisCache) Incr(ctx context.Context, key string, window int) (count int64, err error) {
	ctx, scope := c.scope(ctx, "Incr", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Duration(window)*time.Second)

	if _, err = pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment counter")

		return 0, fmt.Errorf("failed to increment cache counter: %w", err)
	}

	return incr.Val(), nil
}
