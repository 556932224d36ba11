package middleware

import (
	"net/http"
	"strings"

	"roomsched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientIDKey is the gin context key holding the authenticated token subject.
const ClientIDKey = "clientID"

// JWTAuthMiddleware requires a valid HS256 bearer token signed with secret.
// With an empty secret every request passes unauthenticated.
func JWTAuthMiddleware(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		// Retrieve token from header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		clientID, err := utils.ExtractIDFromToken(secret, tokenString)
		if err != nil {
			logger.Debug("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}
