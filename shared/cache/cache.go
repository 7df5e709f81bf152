package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel/infras/otel"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100
	leaseSuffix           = ":lease"
	leaseSeconds          = 30
	Nil                   = redis.Nil
)

// fillScript writes KEYS[1] only while KEYS[2] still holds the caller's lease.
// Delete and Clear remove the lease with the key, so a fill that raced an
// invalidation is dropped.
var fillScript = redis.NewScript(`
if redis.call("GET", KEYS[2]) ~= ARGV[1] then
	return 0
end
redis.call("DEL", KEYS[2])
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "EX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// LeaseKey is where the fill lease for key lives. It shares key as a prefix so
// pattern invalidation removes both.
func LeaseKey(key string) string {
	return key + leaseSuffix
}

// IsMiss reports whether err is a plain cache miss.
func IsMiss(err error) bool {
	return errors.Is(err, Nil)
}

// RedisCache is the read-through cache shared by the domain services.
// Values other than strings are stored as JSON.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	// Lease is taken before reading the source of truth after a miss.
	Lease(ctx context.Context, key string) (string, error)
	// Fill saves value only if the lease survived, so a read that raced an
	// invalidation never caches the stale value.
	Fill(ctx context.Context, key, lease string, value any, duration int) (bool, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Clear deletes every key matching pattern, scanning in batches.
func (cache *redisCache) Clear(ctx context.Context, pattern string) error {
	ctx, scope := cache.scope(ctx, "Clear", pattern)
	defer scope.End()

	var (
		cursor  uint64
		removed int
	)

	for {
		keys, next, err := cache.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("pattern", pattern).Msg("failed to scan cache keys")

			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = cache.client.Del(ctx, keys...).Err(); err != nil {
				scope.TraceError(err)
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to del cache")

				return fmt.Errorf("failed to delete cache value: %w", err)
			}

			removed += len(keys)
		}

		if cursor = next; cursor == 0 {
			break
		}
	}

	scope.SetAttribute("cache.removed", removed)

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) error {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()

	if err := cache.client.Del(ctx, key, LeaseKey(key)).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Str("key", key).Err(err).Msg("failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the cached value into value. A miss returns an error matching Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) error {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		if !IsMiss(err) {
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if str, ok := value.(*string); ok {
		*str = raw

		return nil
	}

	if err = json.Unmarshal([]byte(raw), value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save stores value under key for duration seconds. Zero keeps it until deleted.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) error {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()

	payload, err := encode(value)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

		return err
	}

	if err = cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}

func (cache *redisCache) Lease(ctx context.Context, key string) (string, error) {
	ctx, scope := cache.scope(ctx, "Lease", key)
	defer scope.End()

	token := uuid.NewString()

	if err := cache.client.Set(ctx, LeaseKey(key), token, leaseSeconds*time.Second).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to take cache lease")

		return "", fmt.Errorf("failed to take cache lease: %w", err)
	}

	return token, nil
}

func (cache *redisCache) Fill(ctx context.Context, key, lease string, value any, duration int) (bool, error) {
	ctx, scope := cache.scope(ctx, "Fill", key)
	defer scope.End()

	payload, err := encode(value)
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	filled, err := fillScript.Run(ctx, cache.client, []string{key, LeaseKey(key)}, lease, payload, duration).Int()
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to fill cache")

		return false, fmt.Errorf("failed to fill cache value: %w", err)
	}

	scope.SetAttribute("cache.filled", filled == 1)

	return filled == 1, nil
}

func encode(value any) ([]byte, error) {
	if str, ok := value.(string); ok {
		return []byte(str), nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return payload, nil
}
