package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// LoggerKey is the gin context key holding the request-scoped *zap.Logger.
	LoggerKey       = "logger"
	RequestIDHeader = "X-Request-ID"
)

// RequestLoggerMiddleware tags each request with an ID (reusing the caller's
// X-Request-ID when present) and stores a logger carrying it in the context.
func RequestLoggerMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set(LoggerKey, base.With(zap.String("requestID", requestID)))
		c.Next()
	}
}
