package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore backs Store with a shared Redis instance. Each tag is a set of
// the keys it covers; invalidation deletes the members and the set.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "cache:"}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.prefix+key, value, ttl)
	for _, tag := range tags {
		tagKey := s.prefix + "tag:" + tag
		pipe.SAdd(ctx, tagKey, key)
		if ttl > 0 {
			pipe.Expire(ctx, tagKey, ttl)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate implements Store.
func (s *RedisStore) Invalidate(ctx context.Context, tag string) error {
	tagKey := s.prefix + "tag:" + tag
	keys, err := s.client.SMembers(ctx, tagKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, s.prefix+key)
	}
	pipe.Del(ctx, tagKey)
	_, err = pipe.Exec(ctx)
	return err
}
