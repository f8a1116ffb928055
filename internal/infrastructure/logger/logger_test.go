package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"console", &Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "2006-01-02"}},
		{"json", &Config{Level: "error", Format: "json", Output: "stderr", TimeFormat: "2006-01-02"}},
		{"unknown level falls back to info", &Config{Level: "verbose", Format: "json", Output: "stdout", TimeFormat: "2006-01-02"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), base, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	assert.Same(t, enriched, FromContext(ctx))
	enriched.Info("hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
}

func TestFromContextMissingReturnsNop(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unset"))
}

func TestGormLoggerTraceFlowsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bridge := NewGormLogger(zap.New(core), gormlogger.Info)

	bridge.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT bbl FROM building_metrics WHERE bbl = $1", 1
	}, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "SQL Query", entry.Message)
	assert.Equal(t, "SELECT bbl FROM building_metrics WHERE bbl = $1", entry.ContextMap()["sql"])
}

func TestGormLoggerSilentDropsTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bridge := NewGormLogger(zap.New(core), gormlogger.Silent)

	bridge.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 0
	}, nil)

	assert.Zero(t, logs.Len())
}
