package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler serves the liveness probe
type HealthHandler struct {
	BaseHandler
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Health check
// @Description  Reports service and database status
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check: database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}
