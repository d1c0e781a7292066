package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MenuCache caches rendered public menu payloads keyed by restaurant slug.
// Only the public read path uses it; authorization decisions and search
// results are always evaluated fresh. Every mutation of a restaurant
// invalidates its entry.
type MenuCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MenuCache{redis: client, ttl: ttl}
}

func key(slug string) string {
	return "menu:slug:" + slug
}

// Get returns the cached payload for slug, or ("", false) on a miss. Cache
// failures degrade to a miss; the store remains the source of truth.
func (c *MenuCache) Get(ctx context.Context, slug string) (string, bool) {
	if c == nil || c.redis == nil {
		return "", false
	}
	payload, err := c.redis.Get(ctx, key(slug)).Result()
	if err != nil {
		// redis.Nil and real failures both read as a miss; the request is
		// never failed over the cache
		return "", false
	}
	return payload, true
}

// Set stores the rendered payload for slug.
func (c *MenuCache) Set(ctx context.Context, slug, payload string) {
	if c == nil || c.redis == nil {
		return
	}
	c.redis.Set(ctx, key(slug), payload, c.ttl)
}

// Invalidate drops the cached payload for slug.
func (c *MenuCache) Invalidate(ctx context.Context, slug string) {
	if c == nil || c.redis == nil {
		return
	}
	c.redis.Del(ctx, key(slug))
}
