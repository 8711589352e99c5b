package logger

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	original := log
	t.Cleanup(func() { log = original })

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)
	return logs
}

func TestGormAdapterLevels(t *testing.T) {
	logs := withObservedLogger(t)
	adapter := NewGormAdapter(gormlogger.Info)

	adapter.Info(context.Background(), "info message")
	adapter.Warn(context.Background(), "warn message")
	adapter.Error(context.Background(), "error message")
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 1
	}, nil)

	want := map[string]bool{
		"info message":       false,
		"warn message":       false,
		"error message":      false,
		"SQL query executed": false,
	}
	for _, entry := range logs.All() {
		if _, ok := want[entry.Message]; ok {
			want[entry.Message] = true
		}
	}
	for msg, found := range want {
		if !found {
			t.Errorf("expected log entry %q", msg)
		}
	}
}

func TestGormAdapterWarnLevelSuppressesQueries(t *testing.T) {
	logs := withObservedLogger(t)
	adapter := NewGormAdapter(gormlogger.Warn)

	adapter.Info(context.Background(), "info message")
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 1
	}, nil)

	if logs.Len() != 0 {
		t.Errorf("expected no log entries at warn level, got %d", logs.Len())
	}
}

func TestGormAdapterIgnoresRecordNotFound(t *testing.T) {
	logs := withObservedLogger(t)
	adapter := NewGormAdapter(gormlogger.Info)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = ?", 0
	}, gormlogger.ErrRecordNotFound)

	for _, entry := range logs.All() {
		if entry.Message == "database operation failed" {
			t.Error("record-not-found should not be logged as a failure")
		}
	}
}

func TestGormAdapterFlagsSlowQueries(t *testing.T) {
	logs := withObservedLogger(t)
	adapter := NewGormAdapter(gormlogger.Warn)
	adapter.config.SlowThreshold = time.Millisecond

	begin := time.Now().Add(-10 * time.Millisecond)
	adapter.Trace(context.Background(), begin, func() (string, int64) {
		return "SELECT * FROM order_items", 100
	}, nil)

	found := false
	for _, entry := range logs.All() {
		if entry.Message == "slow SQL query" {
			found = true
		}
	}
	if !found {
		t.Error("expected a slow SQL query warning")
	}
}

func TestGormAdapterLogMode(t *testing.T) {
	adapter := NewGormAdapter(gormlogger.Warn)

	changed := adapter.LogMode(gormlogger.Info)
	if changed == adapter {
		t.Error("LogMode should return a new adapter")
	}
	if adapter.level != gormlogger.Warn {
		t.Error("LogMode must not mutate the receiver")
	}
}
