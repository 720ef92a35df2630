package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a redis-backed cache store
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis store for the given address. An empty password
// and the default DB are used, matching the local development setup.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{client: client}
}

// Ping verifies connectivity so startup can fall back to the memory cache.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) {
	r.client.Set(ctx, key, value, ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) {
	r.client.Del(ctx, key)
}
