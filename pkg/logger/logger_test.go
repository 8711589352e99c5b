package logger

import (
	"os"
	"path/filepath"
	"testing"

	"shopcore/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")
	if err := Sync(); err != nil {
		t.Errorf("Sync() on nil logger returned %v", err)
	}

	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
}

func TestInitByEnvironment(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
		env  string
	}{
		{"development console", config.LogConfig{Level: "debug", Output: "stdout"}, "development"},
		{"production json", config.LogConfig{Level: "info", Output: "stdout"}, "production"},
		{"explicit format", config.LogConfig{Level: "info", Format: "json", Output: "stdout"}, "development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(&tt.cfg, tt.env); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer Sync()

			Info("logger initialized", zap.String("env", tt.env))
			Debug("debug entry")
			Warn("warn entry", zap.Int("value", 42))
		})
	}
}

func TestSetLevel(t *testing.T) {
	if err := Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Sync()

	if !atomLevel.Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled after Init")
	}
	SetLevel("warn")
	if atomLevel.Enabled(zapcore.InfoLevel) {
		t.Error("info level should be disabled after SetLevel(warn)")
	}
	SetLevel("debug")
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	fileConfig := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}
	if err := Init(fileConfig, "production"); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Sync()

	for i := 0; i < 10; i++ {
		Info("log entry", zap.Int("entry", i))
	}
	Sync()

	info, err := os.Stat(logFile)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty")
	}
}
