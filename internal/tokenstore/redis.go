package tokenstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps single-use tokens in Redis so the API service can run
// with more than one replica.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, key string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (uint, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, interfaces.ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, interfaces.ErrTokenNotFound
	}
	return uint(id), nil
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
