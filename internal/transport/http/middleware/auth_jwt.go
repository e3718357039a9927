package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/auth"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

// Authenticator resolves a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

func bearer(c *gin.Context) (string, bool) {
	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	return tok, tok != ""
}

func abort(c *gin.Context, l *zap.Logger, err error) {
	status := resp.StatusOf(err)
	if status >= 500 {
		l.Error("authentication failed", zap.String("rid", c.GetString(CtxRequestID)), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, resp.Error(err.Error()))
}

// AuthJWT requires a valid, unrevoked bearer token and, when roles are
// given, one of those roles.
func AuthJWT(a Authenticator, l *zap.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c)
		if !ok {
			abort(c, l, domain.Unauthenticated("Not authenticated"))
			return
		}
		id, err := a.Authenticate(c.Request.Context(), tok)
		if err != nil {
			abort(c, l, err)
			return
		}
		if len(roles) > 0 && !id.HasRole(roles...) {
			abort(c, l, domain.Forbidden("Access denied"))
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is presented and
// lets the request through either way.
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok, ok := bearer(c); ok {
			if id, err := a.Authenticate(c.Request.Context(), tok); err == nil {
				c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
			}
		}
		c.Next()
	}
}
