package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"
)

const keyPrefix = "twitton:"

// MemcachedCache shares documents between replicas through memcached.
type MemcachedCache struct {
	client     *memcache.Client
	expiration int32
}

func NewMemcachedCache(client *memcache.Client, ttl time.Duration) *MemcachedCache {
	var expiration int32
	if ttl > 0 {
		expiration = int32(ttl / time.Second)
	}
	return &MemcachedCache{
		client:     client,
		expiration: expiration,
	}
}

// HashKey maps an arbitrary cache key onto a memcached-safe key.
func HashKey(key string) string {
	return fmt.Sprintf("%s%016x", keyPrefix, xxh3.HashString(key))
}

func (c *MemcachedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	item, err := c.client.Get(HashKey(key))
	if err != nil {
		if err != memcache.ErrCacheMiss {
			slog.DebugContext(ctx, "memcached get failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
				slog.String("module", "cache"),
			)
		}
		return nil, false
	}
	return item.Value, true
}

func (c *MemcachedCache) Set(ctx context.Context, key string, value []byte) {
	err := c.client.Set(&memcache.Item{
		Key:        HashKey(key),
		Value:      value,
		Expiration: c.expiration,
	})
	if err != nil {
		slog.DebugContext(ctx, "memcached set failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}
