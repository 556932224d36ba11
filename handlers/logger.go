package handlers

import (
	"roomsched/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped Zap logger from the Gin context, or fallback.
func getLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}
