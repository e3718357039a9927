package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist remembers revoked token ids until the token would expire anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisDenylist struct {
	RDB    *redis.Client
	Prefix string
	Now    func() time.Time
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{RDB: rdb, Prefix: "auth:revoked:", Now: time.Now}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := until.Sub(d.Now())
	if ttl <= 0 {
		return nil // already expired
	}
	return d.RDB.Set(ctx, d.Prefix+tokenID, 1, ttl).Err()
}

func (d *RedisDenylist) Revoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	err := d.RDB.Get(ctx, d.Prefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	}
	return false, err
}

// NopDenylist is used when no Redis is configured: logout is then purely
// client side and tokens stay valid until they expire.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Time) error { return nil }
func (NopDenylist) Revoked(context.Context, string) (bool, error)   { return false, nil }
