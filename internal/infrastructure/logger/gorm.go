package logger

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig controls SQL logging
type GormConfig struct {
	Level         string        // silent, error, warn, info or debug
	SlowThreshold time.Duration // zero disables slow query warnings
	LogNotFound   bool          // log ErrRecordNotFound as an error
}

// sensitiveColumns mark statements whose literals must not reach the log
var sensitiveColumns = []string{"password_hash", "refresh_token", "secret"}

var quotedLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)

// GormLogger routes GORM statements into zap with the request's tenant,
// user and trace attached. Statements touching credential columns are
// logged with their string literals masked.
type GormLogger struct {
	base  *zap.Logger
	level gormlogger.LogLevel
	cfg   GormConfig
}

// NewGormLogger creates a GORM logger on base
func NewGormLogger(base *zap.Logger, cfg GormConfig) *GormLogger {
	return &GormLogger{
		base:  base.Named("sql"),
		level: MapGormLogLevel(cfg.Level),
		cfg:   cfg,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.base.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.base.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.base.Sugar().Errorf(msg, data...)
	}
}

// Trace logs one statement: failures at error, slow statements at warn and
// the rest at debug when the level is info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	if err != nil && !l.cfg.LogNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	slow := l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold
	switch {
	case err != nil && l.level >= gormlogger.Error:
		l.base.Error("SQL failed", append(l.fields(ctx, elapsed, fc), zap.Error(err))...)
	case slow && l.level >= gormlogger.Warn:
		l.base.Warn("Slow SQL", append(l.fields(ctx, elapsed, fc), zap.Duration("threshold", l.cfg.SlowThreshold))...)
	case l.level >= gormlogger.Info:
		l.base.Debug("SQL", l.fields(ctx, elapsed, fc)...)
	}
}

func (l *GormLogger) fields(ctx context.Context, elapsed time.Duration, fc func() (string, int64)) []zap.Field {
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", maskSensitive(sql)),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	for key, value := range map[string]string{
		"request_id": GetRequestID(ctx),
		"tenant_id":  GetTenantID(ctx),
		"user_id":    GetUserID(ctx),
		"trace_id":   GetTraceID(ctx),
	} {
		if value != "" {
			fields = append(fields, zap.String(key, value))
		}
	}
	return fields
}

func maskSensitive(sql string) string {
	lower := strings.ToLower(sql)
	for _, col := range sensitiveColumns {
		if strings.Contains(lower, col) {
			return quotedLiteral.ReplaceAllString(sql, "'***'")
		}
	}
	return sql
}

// MapGormLogLevel maps a zap level name onto GORM's levels. Unknown names
// fall back to warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error", "fatal", "panic":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
