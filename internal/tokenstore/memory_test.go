package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDel(t *testing.T) {
	s := NewMemoryStore()
	defer s.Stop()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "ce-abc", 42, 0))

	userID, err := s.Get(ctx, "ce-abc")
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, s.Del(ctx, "ce-abc"))

	_, err = s.Get(ctx, "ce-abc")
	assert.ErrorIs(t, err, interfaces.ErrTokenNotFound)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore()
	defer s.Stop()

	_, err := s.Get(context.Background(), "fp-missing")
	assert.ErrorIs(t, err, interfaces.ErrTokenNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	defer s.Stop()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "fp-short", 7, 20*time.Millisecond))

	userID, err := s.Get(ctx, "fp-short")
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	time.Sleep(60 * time.Millisecond)

	_, err = s.Get(ctx, "fp-short")
	assert.ErrorIs(t, err, interfaces.ErrTokenNotFound)
}

func TestMemoryStoreGetDoesNotExtendTTL(t *testing.T) {
	s := NewMemoryStore()
	defer s.Stop()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "fp-fixed", 7, 50*time.Millisecond))

	// repeated reads must not push the expiry out
	for i := 0; i < 4; i++ {
		time.Sleep(10 * time.Millisecond)
		s.Get(ctx, "fp-fixed")
	}
	time.Sleep(40 * time.Millisecond)

	_, err := s.Get(ctx, "fp-fixed")
	assert.ErrorIs(t, err, interfaces.ErrTokenNotFound)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore()
	defer s.Stop()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "ce-forever", 9, 0))
	time.Sleep(30 * time.Millisecond)

	userID, err := s.Get(ctx, "ce-forever")
	require.NoError(t, err)
	assert.Equal(t, uint(9), userID)
}
