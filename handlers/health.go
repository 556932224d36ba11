package handlers

import (
	"net/http"

	"roomsched/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest dependency snapshot. It answers 503 when a
// configured dependency failed its last ping.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if (status.Mongo != nil && !*status.Mongo) || (status.Redis != nil && !*status.Redis) {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": http.StatusText(code), "dependencies": status})
}
