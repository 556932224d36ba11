// File: handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle carries everything the router needs.
type HandlerBundle struct {
	JWTSecret string

	// Decision endpoints.
	ResolveHandler           gin.HandlerFunc
	GetDecisionHandler       gin.HandlerFunc
	ListRoomDecisionsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle around a decision handler.
func NewHandlerBundle(dh *DecisionHandler, jwtSecret string) *HandlerBundle {
	return &HandlerBundle{
		JWTSecret:                jwtSecret,
		ResolveHandler:           dh.ResolveHandler,
		GetDecisionHandler:       dh.GetDecisionHandler,
		ListRoomDecisionsHandler: dh.ListRoomDecisionsHandler,
		HealthHandler:            HealthHandler,
	}
}
