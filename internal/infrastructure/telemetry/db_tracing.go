package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound variables in db.statement
	SlowQueryThresh time.Duration
	DBSystem        string
	TracerProvider  trace.TracerProvider // nil uses the global provider
}

// DBTracingConfigFrom maps the telemetry settings onto a DBTracingConfig.
func DBTracingConfigFrom(cfg config.TelemetryConfig, driver string) DBTracingConfig {
	system := "postgresql"
	if driver == "sqlite" {
		system = "sqlite"
	}
	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	return DBTracingConfig{
		Enabled:         cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: thresh,
		DBSystem:        system,
	}
}

// DBTracingPlugin registers otelgorm plus a slow query marker on a gorm.DB.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs the plugin. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if p.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(p.config.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerTimingCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

type queryStartKey struct{}

func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := p.slowQueryCallback
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("sellaids:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("sellaids:after_create", after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("sellaids:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("sellaids:after_query", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("sellaids:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("sellaids:after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("sellaids:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("sellaids:after_delete", after); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("sellaids:before_row", before); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("sellaids:after_row", after); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("sellaids:before_raw", before); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("sellaids:after_raw", after)
}

// slowQueryCallback flags slow statements and marks real errors on the span.
// Record-not-found is a normal lookup miss and is not an error.
func (p *DBTracingPlugin) slowQueryCallback(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		elapsed := time.Since(start)
		if elapsed >= p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
			)
			p.logger.Warn("Slow query detected",
				zap.String("table", db.Statement.Table),
				zap.Duration("duration", elapsed),
				zap.String("trace_id", GetTraceID(ctx)),
			)
		}
	}

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) && span.IsRecording() {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}
}
