package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func accessLogEntry(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			e := entry
			return &e
		}
	}
	t.Fatal("no access log entry recorded")
	return nil
}

func serveWithMiddleware(zapLogger *zap.Logger, status int, target string, pre ...gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	for _, mw := range pre {
		router.Use(mw)
	}
	router.Use(GinMiddleware(zapLogger))
	router.GET("/movements", func(c *gin.Context) {
		c.JSON(status, gin.H{"status": status})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGinMiddleware(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	w := serveWithMiddleware(zap.New(core), http.StatusOK, "/movements")
	require.Equal(t, http.StatusOK, w.Code)

	entry := accessLogEntry(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fieldMap := make(map[string]zap.Field)
	for _, field := range entry.Context {
		fieldMap[field.Key] = field
	}
	for _, key := range []string{"status", "latency", "client_ip", "method", "path"} {
		assert.Contains(t, fieldMap, key)
	}
	assert.Equal(t, "/movements", fieldMap["path"].String)
}

func TestGinMiddleware_LevelPerStatus(t *testing.T) {
	t.Run("4xx logged as warning", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		serveWithMiddleware(zap.New(core), http.StatusUnprocessableEntity, "/movements")
		assert.Equal(t, zapcore.WarnLevel, accessLogEntry(t, recorded).Level)
	})

	t.Run("5xx logged as error", func(t *testing.T) {
		core, recorded := observer.New(zapcore.ErrorLevel)
		serveWithMiddleware(zap.New(core), http.StatusInternalServerError, "/movements")
		assert.Equal(t, zapcore.ErrorLevel, accessLogEntry(t, recorded).Level)
	})
}

func TestGinMiddleware_ContextFields(t *testing.T) {
	t.Run("request id picked up", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		serveWithMiddleware(zap.New(core), http.StatusOK, "/movements", func(c *gin.Context) {
			c.Set("request_id", "req-42")
			c.Next()
		})

		entry := accessLogEntry(t, recorded)
		found := false
		for _, field := range entry.Context {
			if field.Key == "request_id" {
				found = true
				assert.Equal(t, "req-42", field.String)
			}
		}
		assert.True(t, found)
	})

	t.Run("tenant id picked up", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		serveWithMiddleware(zap.New(core), http.StatusOK, "/movements", func(c *gin.Context) {
			c.Set("tenant_id", "tenant-7")
			c.Next()
		})

		entry := accessLogEntry(t, recorded)
		found := false
		for _, field := range entry.Context {
			if field.Key == "tenant_id" {
				found = true
				assert.Equal(t, "tenant-7", field.String)
			}
		}
		assert.True(t, found)
	})

	t.Run("query string logged when present", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		serveWithMiddleware(zap.New(core), http.StatusOK, "/movements?page=2&page_size=50")

		entry := accessLogEntry(t, recorded)
		found := false
		for _, field := range entry.Context {
			if field.Key == "query" {
				found = true
				assert.Contains(t, field.String, "page=2")
			}
		}
		assert.True(t, found)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[0].Message, "Panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, _ := observer.New(zapcore.InfoLevel)

	var fromContext *zap.Logger
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/movements", func(c *gin.Context) {
		fromContext = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/movements", nil)
	router.ServeHTTP(w, req)
	assert.NotNil(t, fromContext)

	// without the middleware a no-op logger comes back instead of nil
	var bare *zap.Logger
	bareRouter := gin.New()
	bareRouter.GET("/movements", func(c *gin.Context) {
		bare = GetGinLogger(c)
		c.Status(http.StatusOK)
	})
	w = httptest.NewRecorder()
	bareRouter.ServeHTTP(w, req)
	require.NotNil(t, bare)
	assert.NotPanics(t, func() { bare.Info("ping") })
}
