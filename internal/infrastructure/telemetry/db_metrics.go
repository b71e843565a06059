package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sellaids/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBDurationBuckets are the query latency histogram boundaries, in seconds
var DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DBMetricsConfig holds configuration for database metrics.
type DBMetricsConfig struct {
	Enabled         bool
	SlowQueryThresh time.Duration
	DBSystem        string
}

// DBMetricsConfigFrom enables database metrics whenever metrics export is on.
func DBMetricsConfigFrom(cfg config.TelemetryConfig, driver string) DBMetricsConfig {
	tracing := DBTracingConfigFrom(cfg, driver)
	return DBMetricsConfig{
		Enabled:         cfg.Enabled && cfg.MetricsEnabled,
		SlowQueryThresh: tracing.SlowQueryThresh,
		DBSystem:        tracing.DBSystem,
	}
}

// DBMetrics records query counts and latency, and reports connection pool
// usage whenever the reader collects.
type DBMetrics struct {
	queries  metric.Int64Counter
	duration metric.Float64Histogram
	slow     metric.Int64Counter
	pool     metric.Registration
	config   DBMetricsConfig
}

// NewDBMetrics creates the instruments. sqlDB may be nil, in which case no
// pool gauges are reported.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, sqlDB *sql.DB) (*DBMetrics, error) {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	m := &DBMetrics{config: cfg}

	var err error
	if m.queries, err = meter.Int64Counter("db.client.queries",
		metric.WithDescription("Database statements executed, by operation"),
		metric.WithUnit("{query}")); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram("db.client.query.duration",
		metric.WithDescription("Database statement latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...)); err != nil {
		return nil, err
	}
	if m.slow, err = meter.Int64Counter("db.client.slow_queries",
		metric.WithDescription("Statements slower than the slow query threshold, by table"),
		metric.WithUnit("{query}")); err != nil {
		return nil, err
	}

	if sqlDB == nil {
		return m, nil
	}
	conns, err := meter.Int64ObservableGauge("db.client.connections",
		metric.WithDescription("Pool connections by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxConns, err := meter.Int64ObservableGauge("db.client.connections.max",
		metric.WithDescription("Maximum open connections allowed by the pool"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	m.pool, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		return nil
	}, conns, maxConns)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordQuery records one statement. A missing row is a normal lookup miss
// and is not counted as an error.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, d time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "OTHER"
	}
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	attrs := metric.WithAttributes(
		AttrDBSystem.String(m.config.DBSystem),
		AttrDBOperation.String(operation),
		AttrDBError.Bool(failed))
	m.queries.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)

	if d >= m.config.SlowQueryThresh {
		if table == "" {
			table = "unknown"
		}
		m.slow.Add(ctx, 1, metric.WithAttributes(AttrDBTable.String(table)))
	}
}

// Stop detaches the pool gauges. Safe to call more than once.
func (m *DBMetrics) Stop() error {
	if m.pool == nil {
		return nil
	}
	err := m.pool.Unregister()
	m.pool = nil
	return err
}

type metricsStartKey struct{}

// DBMetricsPlugin is a gorm.Plugin feeding DBMetrics from statement callbacks.
type DBMetricsPlugin struct {
	metrics *DBMetrics
}

var _ gorm.Plugin = (*DBMetricsPlugin)(nil)

func NewDBMetricsPlugin(metrics *DBMetrics) *DBMetricsPlugin {
	return &DBMetricsPlugin{metrics: metrics}
}

func (p *DBMetricsPlugin) Name() string { return "sellaids:db_metrics" }

func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	start := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, metricsStartKey{}, time.Now())
	}
	record := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) { p.record(tx, operation) }
	}
	fromSQL := func(tx *gorm.DB) { p.record(tx, statementOperation(tx.Statement.SQL.String())) }

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("sellaids_metrics:before_create", start); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("sellaids_metrics:after_create", record("INSERT")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("sellaids_metrics:before_query", start); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("sellaids_metrics:after_query", record("SELECT")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("sellaids_metrics:before_update", start); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("sellaids_metrics:after_update", record("UPDATE")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("sellaids_metrics:before_delete", start); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("sellaids_metrics:after_delete", record("DELETE")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("sellaids_metrics:before_row", start); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("sellaids_metrics:after_row", fromSQL); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("sellaids_metrics:before_raw", start); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("sellaids_metrics:after_raw", fromSQL)
}

func (p *DBMetricsPlugin) record(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	var elapsed time.Duration
	if start, ok := ctx.Value(metricsStartKey{}).(time.Time); ok {
		elapsed = time.Since(start)
	}
	p.metrics.RecordQuery(ctx, operation, tx.Statement.Table, elapsed, tx.Error)
}

// statementOperation reads the verb of a raw statement
func statementOperation(stmt string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(stmt), " ")
	switch verb = strings.ToUpper(verb); verb {
	case "SELECT", "INSERT", "UPDATE", "DELETE":
		return verb
	default:
		return "OTHER"
	}
}

// RegisterDBMetrics installs the plugin on db when metrics export is on. It
// returns nil metrics when disabled; call Stop on shutdown otherwise.
func RegisterDBMetrics(db *gorm.DB, mp *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled || mp == nil || !mp.IsEnabled() {
		logger.Debug("Database metrics disabled")
		return nil, nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	metrics, err := NewDBMetrics(mp.Meter("db.client"), cfg, sqlDB)
	if err != nil {
		return nil, err
	}
	if err := db.Use(NewDBMetricsPlugin(metrics)); err != nil {
		_ = metrics.Stop()
		return nil, err
	}
	logger.Info("Database metrics enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh))
	return metrics, nil
}
