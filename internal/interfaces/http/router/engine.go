package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/sellaids/backend/internal/infrastructure/logger"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"github.com/sellaids/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig holds what the global middleware chain needs
type EngineConfig struct {
	Logger  *zap.Logger
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig
	// HTTPMetrics is nil when metrics export is disabled
	HTTPMetrics *telemetry.HTTPMetrics
	// RateLimiter is nil when the global limit is disabled
	RateLimiter *middleware.RateLimiter
	// Profiling labels profile samples by route
	Profiling bool
}

// NewEngine builds a gin engine with the global middleware chain in order:
// request ID, panic recovery, request logging, security headers, CORS, body
// limit, global rate limit and, when telemetry is on, tracing, metrics and
// profiling labels.
// Authentication is attached per route group.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	if tracing := middleware.Tracing(cfg.Tracing); len(tracing) > 0 {
		engine.Use(tracing...)
	}
	if cfg.HTTPMetrics != nil {
		engine.Use(middleware.HTTPMetrics(cfg.HTTPMetrics))
	}
	if cfg.Profiling {
		engine.Use(middleware.ProfilingLabels())
	}

	return engine, nil
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
