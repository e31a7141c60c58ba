package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_FromContext(t *testing.T) {
	t.Run("stores and retrieves logger", func(t *testing.T) {
		logger := zap.NewNop()
		ctx := WithContext(context.Background(), logger)

		got := FromContext(ctx)
		assert.Same(t, logger, got)
	})

	t.Run("returns no-op logger when missing", func(t *testing.T) {
		got := FromContext(context.Background())
		assert.NotNil(t, got)
	})
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithTenantID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithTenantID(context.Background(), logger, "tenant-1")

	assert.Equal(t, "tenant-1", GetTenantID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "tenant-1", entries[0].ContextMap()["tenant_id"])
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-9")
	assert.Equal(t, "user-9", GetUserID(ctx))
}

func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetTenantID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestContextLogger(t *testing.T) {
	t.Run("injects context fields into entries", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		logger := zap.New(core)

		ctx := WithContext(context.Background(), logger)
		ctx = context.WithValue(ctx, RequestIDKey, "req-42")
		ctx = context.WithValue(ctx, TenantIDKey, "tenant-7")
		ctx = context.WithValue(ctx, UserIDKey, "user-3")

		L(ctx).Info("stock movement posted")

		entries := logs.All()
		assert.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, "tenant-7", fields["tenant_id"])
		assert.Equal(t, "user-3", fields["user_id"])
	})

	t.Run("works without logger in context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			L(context.Background()).Info("noop")
		})
	})

	t.Run("With adds fields to child logger", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		logger := zap.New(core)

		cl := WithLogger(context.Background(), logger).With(zap.String("component", "ledger"))
		cl.Warn("posting failed")

		entries := logs.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "ledger", entries[0].ContextMap()["component"])
	})

	t.Run("Zap returns usable logger", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		logger := zap.New(core)

		WithLogger(context.Background(), logger).Zap().Info("direct")
		assert.Len(t, logs.All(), 1)
	})
}
