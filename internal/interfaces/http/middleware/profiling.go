package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
)

// ProfilingLabels tags profile samples taken while a request is handled
// with its method, route template and route group. Unmatched paths are not
// labelled so raw URLs never become label values.
func ProfilingLabels() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  route,
			telemetry.ProfilingLabelPanel:  routePanel(route),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// routePanel returns the first segment after the API version, e.g. "vendor"
// for /api/v1/vendor/products/:id.
func routePanel(route string) string {
	rest, ok := strings.CutPrefix(route, "/api/")
	if !ok {
		return ""
	}
	if _, afterVersion, found := strings.Cut(rest, "/"); found {
		rest = afterVersion
	} else {
		return ""
	}
	panel, _, _ := strings.Cut(rest, "/")
	return panel
}
