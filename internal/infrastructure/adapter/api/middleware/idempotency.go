package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerr "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	idempotencyPrefix    = "idempotency:v1:"
	inProgressMarker     = "__in_progress__"
	redisOpTimeout       = 2 * time.Second
)

// storedResponse is the cached representation of a completed response
type storedResponse struct {
	Status  int               `json:"status"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

// bodyCapture duplicates the response body so it can be cached after the
// handler runs
type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays completed responses for repeated Idempotency-Key
// values and rejects concurrent duplicates while the first request is still
// in flight. Safe methods pass through untouched.
func Idempotency(cache *redis.Client, ttl time.Duration, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing Idempotency-Key header",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), redisOpTimeout)
		defer cancel()

		cacheKey := idempotencyPrefix + key

		cached, err := cache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cached == inProgressMarker {
				c.AbortWithStatusJSON(http.StatusConflict, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
					Message: "Duplicate request currently processing",
				})
				return
			}

			var stored storedResponse
			if err := json.Unmarshal([]byte(cached), &stored); err != nil {
				logger.Warn("Failed to decode stored idempotent response", map[string]any{
					"key":   key,
					"error": err.Error(),
				})
				c.AbortWithStatusJSON(http.StatusConflict, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
					Message: "Duplicate request",
				})
				return
			}

			for header, value := range stored.Headers {
				if strings.EqualFold(header, "Content-Length") {
					continue
				}
				c.Header(header, value)
			}
			c.Data(stored.Status, stored.Headers["Content-Type"], []byte(stored.Body))
			c.Abort()
			return
		}

		if err != redis.Nil {
			logger.Error("Idempotency lookup failed", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
				Message: "Idempotency store failure",
			})
			return
		}

		if err := cache.SetNX(ctx, cacheKey, inProgressMarker, ttl).Err(); err != nil {
			logger.Error("Idempotency reservation failed", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
				Message: "Idempotency reservation failure",
			})
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cleanupCancel()

		// Server-side failures are not replayable outcomes; release the key
		// so the client can retry.
		if capture.Status() >= http.StatusInternalServerError {
			cache.Del(cleanupCtx, cacheKey)
			return
		}

		stored := storedResponse{
			Status: capture.Status(),
			Body:   capture.body.String(),
			Headers: map[string]string{
				"Content-Type": capture.Header().Get("Content-Type"),
			},
		}

		payload, err := json.Marshal(stored)
		if err != nil {
			logger.Error("Failed to encode idempotent response", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			cache.Del(cleanupCtx, cacheKey)
			return
		}

		if err := cache.Set(cleanupCtx, cacheKey, payload, ttl).Err(); err != nil {
			logger.Error("Failed to persist idempotent response", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			cache.Del(cleanupCtx, cacheKey)
		}
	}
}
