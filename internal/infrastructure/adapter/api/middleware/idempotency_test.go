package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockcore "github.com/nmehta6/wallet-ledger/mocks/port/core"
)

func setupIdempotentRouter(t *testing.T) (*gin.Engine, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	var handlerCalls atomic.Int32

	router := gin.New()
	router.Use(Idempotency(cache, time.Minute, mockcore.NoopLogger{}))
	router.POST("/resource", func(c *gin.Context) {
		handlerCalls.Add(1)
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	router.GET("/resource", func(c *gin.Context) {
		handlerCalls.Add(1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, &handlerCalls
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/resource", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("should require the key header on unsafe methods", func(t *testing.T) {
		router, calls := setupIdempotentRouter(t)

		w := postWithKey(router, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("should pass safe methods through without a key", func(t *testing.T) {
		router, calls := setupIdempotentRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("should replay the cached response for a repeated key", func(t *testing.T) {
		router, calls := setupIdempotentRouter(t)

		first := postWithKey(router, "abc123")
		require.Equal(t, http.StatusCreated, first.Code)

		second := postWithKey(router, "abc123")

		assert.Equal(t, http.StatusCreated, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, int32(1), calls.Load(), "handler must run exactly once")
	})

	t.Run("should serve distinct keys independently", func(t *testing.T) {
		router, calls := setupIdempotentRouter(t)

		first := postWithKey(router, "key-1")
		second := postWithKey(router, "key-2")

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, int32(2), calls.Load())
	})
}
