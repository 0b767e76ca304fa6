package middleware

import (
	"time"

	"rating-dashboard/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when given,
// and logs the request once it completes.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set("request_id", id)
		ctx.Header(RequestIDHeader, id)
		ctx.Request = ctx.Request.WithContext(logger.WithRequestID(ctx.Request.Context(), id))

		start := time.Now()
		ctx.Next()

		logger.FromContext(ctx.Request.Context()).WithFields(map[string]interface{}{
			"method":     ctx.Request.Method,
			"path":       ctx.Request.URL.Path,
			"status":     ctx.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	}
}
