package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapterConfig tunes the GORM-to-zap bridge.
type GormAdapterConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// DefaultGormAdapterConfig flags queries slower than 200ms.
func DefaultGormAdapterConfig() GormAdapterConfig {
	return GormAdapterConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	}
}

// GormAdapter routes GORM logs through the global zap logger.
type GormAdapter struct {
	level  gormlogger.LogLevel
	config GormAdapterConfig
}

// NewGormAdapter creates the adapter with default config.
func NewGormAdapter(level gormlogger.LogLevel) *GormAdapter {
	return &GormAdapter{level: level, config: DefaultGormAdapterConfig()}
}

func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormAdapter{level: level, config: a.config}
}

func (a *GormAdapter) Info(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Info {
		Info(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Warn(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Warn {
		Warn(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Error(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Error {
		Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs completed statements: errors at error level, slow queries
// at warn, everything else at info when the level allows it.
func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && a.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && a.config.IgnoreRecordNotFoundError {
			return
		}
		Error("database operation failed", append(fields, zap.Error(err))...)
	case a.config.SlowThreshold > 0 && elapsed > a.config.SlowThreshold && a.level >= gormlogger.Warn:
		Warn("slow SQL query", fields...)
	case a.level >= gormlogger.Info:
		Info("SQL query executed", fields...)
	}
}

var _ gormlogger.Interface = (*GormAdapter)(nil)
