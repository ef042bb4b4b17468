package tokenstore

import (
	"context"
	"time"

	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore is an in-process token store for development and tests.
// Tokens do not survive a restart.
type MemoryStore struct {
	cache *ttlcache.Cache[string, uint]
}

func NewMemoryStore() *MemoryStore {
	cache := ttlcache.New(
		// reading a token must not extend its lifetime
		ttlcache.WithDisableTouchOnHit[string, uint](),
	)
	go cache.Start()
	return &MemoryStore{cache: cache}
}

func (s *MemoryStore) Set(ctx context.Context, key string, userID uint, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.cache.Set(key, userID, ttl)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (uint, error) {
	item := s.cache.Get(key)
	if item == nil {
		return 0, interfaces.ErrTokenNotFound
	}
	return item.Value(), nil
}

func (s *MemoryStore) Del(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *MemoryStore) Stop() {
	s.cache.Stop()
}
