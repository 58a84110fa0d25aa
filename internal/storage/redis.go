package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps each namespace in one hash, "localstorage:<namespace>".
// A non-zero ttl is refreshed on every write.
type RedisBackend struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisBackend(rdb *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{rdb: rdb, ttl: ttl}
}

func (b *RedisBackend) For(namespace string) LocalStorage {
	return &redisStorage{b: b, key: "localstorage:" + namespace}
}

type redisStorage struct {
	b   *RedisBackend
	key string
}

func (s *redisStorage) GetItem(ctx context.Context, key string) (string, error) {
	v, err := s.b.rdb.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoItem
	}
	return v, err
}

func (s *redisStorage) SetItem(ctx context.Context, key, value string) error {
	pipe := s.b.rdb.TxPipeline()
	pipe.HSet(ctx, s.key, key, value)
	if s.b.ttl > 0 {
		pipe.Expire(ctx, s.key, s.b.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStorage) RemoveItem(ctx context.Context, key string) error {
	return s.b.rdb.HDel(ctx, s.key, key).Err()
}
