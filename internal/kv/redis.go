package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "foodcycle:"

// RedisStore keeps collections in Redis so several local processes on one
// machine share the same data, mirroring a shared browser storage area.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Get returns the stored value and whether the key exists.
func (s *RedisStore) Get(name string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, keyPrefix+name).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores or replaces the value for a key. Entries do not expire.
func (s *RedisStore) Set(name string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, keyPrefix+name, value, 0).Err()
}

// Delete removes a key.
func (s *RedisStore) Delete(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, keyPrefix+name).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
