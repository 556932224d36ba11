package routes

import (
	"net/http"
	"time"

	"roomsched/handlers"
	"roomsched/middleware"
	"roomsched/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterDecisionRoutes sets up the endpoints for the conflict resolver.
func RegisterDecisionRoutes(r *gin.Engine, hb *handlers.HandlerBundle, logger *zap.Logger) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, logger))
		api.POST("/decisions", hb.ResolveHandler)
		api.GET("/decisions/:id", hb.GetDecisionHandler)
		api.GET("/rooms/:roomId/decisions", hb.ListRoomDecisionsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, logger *zap.Logger) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterDecisionRoutes(r, hb, logger)
}

// NewRouter builds the gin engine with recovery, rate limiting and every route.
func NewRouter(hb *handlers.HandlerBundle, maxRequestsPerMin int, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLoggerMiddleware(logger))
	router.Use(middleware.RateLimitMiddleware(maxRequestsPerMin, logger))

	RegisterRoutes(router, hb, logger)
	return router
}
