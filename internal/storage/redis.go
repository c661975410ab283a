package storage

import (
    "context"
    "errors"

    "github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis under an optional key prefix.
type RedisStore struct {
    rdb    *redis.Client
    prefix string
}

// NewRedisStore wraps an existing client.  prefix is prepended to every
// key, e.g. "oneday:".
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
    return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
    b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, ErrNotFound
    }
    return b, err
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
    return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
    return s.rdb.Del(ctx, s.prefix+key).Err()
}
