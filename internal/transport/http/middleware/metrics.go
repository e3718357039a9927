package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khaoulaLakhdim/orders-management/internal/core/metrics"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
