package auth

import (
	"context"
	"time"
)

// Identity is the authenticated caller of one request. It lives in the
// request context only.
type Identity struct {
	UserID    int64
	Username  string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// IdentityFromClaims builds the request identity out of a parsed token.
func IdentityFromClaims(c *Claims) (Identity, error) {
	uid, err := c.UserID()
	if err != nil {
		return Identity{}, err
	}
	id := Identity{UserID: uid, Username: c.Username, Role: c.Role, TokenID: c.ID}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id, nil
}
