package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound is returned by Get when the key is absent or expired.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore holds single-use tokens mapping to a user id. A zero ttl means
// the entry never expires and lives until deleted.
type TokenStore interface {
	Set(ctx context.Context, key string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, key string) (uint, error)
	Del(ctx context.Context, key string) error
}
