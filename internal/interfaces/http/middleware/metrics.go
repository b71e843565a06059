package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
)

// unmatchedRoute keeps raw paths of 404s out of metric labels
const unmatchedRoute = "unmatched"

// HTTPMetrics records request count and latency per route template
func HTTPMetrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.Record(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
