package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

// ConcurrencyLimit caps the number of requests in flight; a request that
// cannot get a slot before its context ends gets 503.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error("Server busy"))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
