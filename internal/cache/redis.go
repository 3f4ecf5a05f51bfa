package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache wraps a shared Redis client with the key/value operations
// the caches use. The client's lifecycle is owned by the process
// bootstrap, not by this wrapper.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ctx: context.Background()}
}

// Get retrieves a value; a missing key returns (nil, nil).
func (c *RedisCache) Get(key string) ([]byte, error) {
	val, err := c.client.Get(c.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

// Set stores a value with a TTL.
func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	return c.client.Set(c.ctx, key, value, ttl).Err()
}

// Delete removes a key.
func (c *RedisCache) Delete(key string) error {
	return c.client.Del(c.ctx, key).Err()
}

// Ping checks the connection.
func (c *RedisCache) Ping() error {
	return c.client.Ping(c.ctx).Err()
}
