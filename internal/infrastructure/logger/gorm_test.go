package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestNewGormLogger(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.True(t, gormLog.ignoreRecordNotFoundError)

	var _ gormlogger.Interface = gormLog
}

func TestGormLoggerOptions(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gormLog.slowThreshold)
	assert.False(t, gormLog.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Info)

	clone := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	cloned, ok := clone.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, cloned.logLevel)
}

func TestGormLogger_Levels(t *testing.T) {
	t.Run("info logged at info level", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info)
		gormLog.Info(context.Background(), "migrated %s", "parties")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "migrated parties")
	})

	t.Run("info suppressed when silent", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Silent)
		gormLog.Info(context.Background(), "migrated parties")
		assert.Empty(t, recorded.All())
	})

	t.Run("warn and error pass through", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn)
		gormLog.Warn(context.Background(), "retrying %d", 2)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)

		gormLog, recorded = newObservedGormLogger(gormlogger.Error)
		gormLog.Error(context.Background(), "connect failed")
		logs = recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	fc := func() (string, int64) {
		return "SELECT * FROM party_movements", 5
	}

	t.Run("failed statement logged as error", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), fc, errors.New("deadlock detected"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SQL Error")
	})

	t.Run("record not found suppressed", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("record not found logged when not ignored", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gormLog.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)
		assert.Len(t, recorded.All(), 1)
	})

	t.Run("slow statement logged as warning", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
	})

	t.Run("normal statement logged at debug", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info)
		gormLog.Trace(context.Background(), time.Now(), fc, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SQL Query")
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Silent)
		gormLog.Trace(context.Background(), time.Now(), fc, nil)
		assert.Empty(t, recorded.All())
	})

	t.Run("request id carried from context", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")

		gormLog.Trace(ctx, time.Now(), fc, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		found := false
		for _, field := range logs[0].Context {
			if field.Key == "request_id" {
				found = true
				assert.Equal(t, "req-123", field.String)
			}
		}
		assert.True(t, found)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
