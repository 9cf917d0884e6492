package middleware

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	internalRedis "rideshare/internal/redis"
)

const idempotencyHeader = "Idempotency-Key"

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response of a mutating request
// that repeats its Idempotency-Key. Keys are scoped to the authenticated user
// when one is known. A nil cache disables the middleware.
func IdempotencyMiddleware(cache internalRedis.ResponseCacheInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil || !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := c.Request.Method + ":" + c.FullPath() + ":" + key
		if userID := UserID(c); userID != "" {
			cacheKey = userID + ":" + cacheKey
		}

		cached, err := cache.GetResponse(ctx, cacheKey)
		if err != nil {
			// Redis error - proceed without idempotency.
			log.Printf("[HTTP] idempotency lookup failed: %v", err)
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, cached.Headers.Get("Content-Type"), cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are retryable and never cached.
		if status := c.Writer.Status(); status >= 200 && status < 500 {
			response := internalRedis.CachedResponse{
				StatusCode: status,
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			if err := cache.SetResponse(ctx, cacheKey, &response); err != nil {
				log.Printf("[HTTP] idempotency store failed: %v", err)
			}
		}
	}
}

func isMutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	// Only cache Content-Type header.
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
