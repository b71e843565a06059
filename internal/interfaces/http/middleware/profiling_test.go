package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestRoutePanel(t *testing.T) {
	assert.Equal(t, "vendor", routePanel("/api/v1/vendor/products/:id"))
	assert.Equal(t, "products", routePanel("/api/v1/products"))
	assert.Equal(t, "", routePanel("/api/v1"))
	assert.Equal(t, "", routePanel("/health"))
}

func TestProfilingLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	labels := map[string]string{}
	record := func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
			labels[k] = v
			return true
		})
		c.Status(http.StatusOK)
	}

	r := gin.New()
	r.Use(ProfilingLabels())
	r.GET("/api/v1/vendor/products/:id", record)
	r.NoRoute(record)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/vendor/products/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{
		telemetry.ProfilingLabelMethod: http.MethodGet,
		telemetry.ProfilingLabelRoute:  "/api/v1/vendor/products/:id",
		telemetry.ProfilingLabelPanel:  "vendor",
	}, labels)

	labels = map[string]string{}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil))
	assert.Empty(t, labels)
}
