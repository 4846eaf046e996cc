package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"pehlione.com/storefront/internal/observability"
)

// Metrics records request count and latency per route template, so
// /api/products/:slug stays one series regardless of the slug.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
