package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	catalogKeyPrefix        = "catalog:service:"
	catalogGenerationSuffix = ":gen"
)

// CatalogCache keeps read-mostly service catalog entries as JSON. Cache
// failures are logged and treated as misses; the database stays the source
// of truth.
//
// Readers take a Generation before loading from the database and pass it to
// Set. Invalidate bumps the generation, so a value loaded before a committed
// write is never stored after it.
type CatalogCache interface {
	Get(ctx context.Context, id uuid.UUID, dest any) bool
	Generation(ctx context.Context, id uuid.UUID) (int64, bool)
	Set(ctx context.Context, id uuid.UUID, generation int64, value any)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) CatalogCache {
	return &redisCatalogCache{client: client, ttl: ttl, log: log}
}

func catalogKeys(id uuid.UUID) (entry, generation string) {
	entry = catalogKeyPrefix + id.String()
	return entry, entry + catalogGenerationSuffix
}

func (c *redisCatalogCache) Get(ctx context.Context, id uuid.UUID, dest any) bool {
	key, _ := catalogKeys(id)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warnf("Failed to read catalog cache: %+v", err)
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.log.Warnf("Failed to decode catalog cache entry: %+v", err)
		return false
	}
	return true
}

// Generation reports false when Redis cannot be read; the caller then
// skips Set.
func (c *redisCatalogCache) Generation(ctx context.Context, id uuid.UUID) (int64, bool) {
	_, genKey := catalogKeys(id)
	gen, err := c.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.log.Warnf("Failed to read catalog cache generation: %+v", err)
		return 0, false
	}
	return gen, true
}

// setIfGenerationScript writes the entry only while the generation still
// matches the one the reader started from.
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen == ARGV[1] then
  if tonumber(ARGV[3]) > 0 then
    redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
  else
    redis.call("SET", KEYS[1], ARGV[2])
  end
  return 1
end
return 0
`)

func (c *redisCatalogCache) Set(ctx context.Context, id uuid.UUID, generation int64, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Failed to encode catalog cache entry: %+v", err)
		return
	}
	key, genKey := catalogKeys(id)
	err = setIfGenerationScript.Run(ctx, c.client, []string{key, genKey},
		strconv.FormatInt(generation, 10), b, c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warnf("Failed to write catalog cache: %+v", err)
	}
}

func (c *redisCatalogCache) Invalidate(ctx context.Context, id uuid.UUID) {
	key, genKey := catalogKeys(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.log.Warnf("Failed to invalidate catalog cache: %+v", err)
	}
}

// NoopCatalogCache never hits.
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(context.Context, uuid.UUID, any) bool            { return false }
func (NoopCatalogCache) Generation(context.Context, uuid.UUID) (int64, bool) { return 0, false }
func (NoopCatalogCache) Set(context.Context, uuid.UUID, int64, any)          {}
func (NoopCatalogCache) Invalidate(context.Context, uuid.UUID)               {}
