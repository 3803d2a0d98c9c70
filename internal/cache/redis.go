package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/legalchat/legalchat/internal/retrieval"
)

// RedisCache shares retrieval results across replicas through Redis.
// Keys are "query:"+query with a fixed TTL; misses and transport errors
// both read as cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing Redis client as a QueryCache.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}
}

func queryKey(query string) string { return "query:" + query }

func (c *RedisCache) Get(ctx context.Context, query string) (*retrieval.Result, bool) {
	raw, err := c.client.Get(ctx, queryKey(query)).Bytes()
	if err != nil {
		return nil, false
	}
	var result retrieval.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, query string, result *retrieval.Result) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.client.Set(ctx, queryKey(query), payload, c.ttl)
}

// Purge is a no-op; Redis entries expire on their own.
func (c *RedisCache) Purge() {}

var _ QueryCache = (*RedisCache)(nil)
