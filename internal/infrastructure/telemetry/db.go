package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig configures the GORM instrumentation
type DBConfig struct {
	// System is the db.system span attribute, e.g. postgresql
	System string
	// TraceEnabled registers the otelgorm span plugin
	TraceEnabled bool
	// LogFullSQL keeps query variables in span statements
	LogFullSQL bool
	// SlowQueryThreshold marks spans and logs queries slower than this
	SlowQueryThreshold time.Duration
}

type queryStartKey struct{}

// dbInstrumentation annotates spans and records query metrics through GORM
// callbacks
type dbInstrumentation struct {
	cfg      DBConfig
	logger   *zap.Logger
	duration *Histogram
}

// InstrumentDB registers otelgorm (when enabled), a slow-query detector and
// the query duration histogram on db, and reports connection pool gauges
// through meter.
func InstrumentDB(db *gorm.DB, cfg DBConfig, meter metric.Meter, logger *zap.Logger) error {
	if cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.System)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return fmt.Errorf("failed to register otelgorm: %w", err)
		}
	}

	duration, err := NewHistogram(meter, "db.client.query.duration", "Duration of database queries", "s",
		0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5)
	if err != nil {
		return err
	}
	inst := &dbInstrumentation{cfg: cfg, logger: logger, duration: duration}
	if err := inst.register(db); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := registerPoolGauges(meter, sqlDB); err != nil {
		return err
	}

	logger.Info("Database instrumentation registered",
		zap.Bool("tracing", cfg.TraceEnabled),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return nil
}

func (d *dbInstrumentation) register(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("assetops:before_create", d.before),
		cb.Create().After("gorm:create").Register("assetops:after_create", d.after("create")),
		cb.Query().Before("gorm:query").Register("assetops:before_query", d.before),
		cb.Query().After("gorm:query").Register("assetops:after_query", d.after("select")),
		cb.Update().Before("gorm:update").Register("assetops:before_update", d.before),
		cb.Update().After("gorm:update").Register("assetops:after_update", d.after("update")),
		cb.Delete().Before("gorm:delete").Register("assetops:before_delete", d.before),
		cb.Delete().After("gorm:delete").Register("assetops:after_delete", d.after("delete")),
		cb.Row().Before("gorm:row").Register("assetops:before_row", d.before),
		cb.Row().After("gorm:row").Register("assetops:after_row", d.after("row")),
		cb.Raw().Before("gorm:raw").Register("assetops:before_raw", d.before),
		cb.Raw().After("gorm:raw").Register("assetops:after_raw", d.after("raw")),
	)
}

func (d *dbInstrumentation) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (d *dbInstrumentation) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		failed := db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)

		d.duration.RecordDuration(ctx, elapsed,
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", db.Statement.Table),
			attribute.Bool("error", failed),
		)

		if d.cfg.SlowQueryThreshold <= 0 || elapsed < d.cfg.SlowQueryThreshold {
			return
		}
		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
		d.logger.Warn("Slow query",
			zap.String("operation", operation),
			zap.String("table", db.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", db.Statement.RowsAffected),
		)
	}
}

// registerPoolGauges observes sql.DBStats on every metric collection
func registerPoolGauges(meter metric.Meter, sqlDB *sql.DB) error {
	open, err := meter.Int64ObservableGauge("db.client.connections.open",
		metric.WithDescription("Open database connections"))
	if err != nil {
		return err
	}
	inUse, err := meter.Int64ObservableGauge("db.client.connections.in_use",
		metric.WithDescription("Database connections in use"))
	if err != nil {
		return err
	}
	waits, err := meter.Int64ObservableCounter("db.client.connections.waits",
		metric.WithDescription("Total waits for a free connection"))
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(open, int64(stats.OpenConnections))
		o.ObserveInt64(inUse, int64(stats.InUse))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, open, inUse, waits)
	return err
}
