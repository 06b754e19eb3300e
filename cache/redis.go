package cache

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares cached bodies between processes. Keys are namespaced by
// prefix and hashed, since raw keys carry full URLs and JSON.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cache"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: TTL}
}

// Dial connects to addr and pings it with a short timeout.
func Dial(ctx context.Context, addr string, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", addr)
	}
	return NewRedisStore(rdb, prefix), nil
}

func (s *RedisStore) hashedKey(key string) string {
	sum := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s:%x", s.prefix, sum[:])
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := s.rdb.Get(ctx, s.hashedKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return body, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, body []byte) error {
	if err := s.rdb.SetEx(ctx, s.hashedKey(key), body, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
