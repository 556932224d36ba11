package handlers

import (
	"errors"
	"net/http"
	"strconv"

	decisionRepo "roomsched/database/repository/decision"
	"roomsched/middleware"
	"roomsched/models"
	"roomsched/services/conflict"
	"roomsched/services/decision"
	"roomsched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DecisionHandler serves the conflict resolution API.
type DecisionHandler struct {
	Service decision.DecisionService
	Logger  *zap.Logger
}

func NewDecisionHandler(svc decision.DecisionService, logger *zap.Logger) *DecisionHandler {
	return &DecisionHandler{Service: svc, Logger: logger}
}

// ResolveHandler decides which parts of the candidate can be granted.
func (h *DecisionHandler) ResolveHandler(c *gin.Context) {
	var req models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Service.Decide(c.Request.Context(), decision.DecideInput{
		Existing:  req.Existing,
		Candidate: req.Candidate,
		ClientID:  c.GetString(middleware.ClientIDKey),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetDecisionHandler returns one recorded decision.
func (h *DecisionHandler) GetDecisionHandler(c *gin.Context) {
	record, err := h.Service.GetDecision(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListRoomDecisionsHandler returns the newest decisions for a room.
func (h *DecisionHandler) ListRoomDecisionsHandler(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.Service.ListRoomDecisions(c.Request.Context(), c.Param("roomId"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": records})
}

func (h *DecisionHandler) writeError(c *gin.Context, err error) {
	switch {
	case conflict.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid booking", err.Error())
	case errors.Is(err, decisionRepo.ErrDecisionNotFound):
		utils.JSONError(c, http.StatusNotFound, "decision not found", "")
	case errors.Is(err, decision.ErrAuditDisabled):
		utils.JSONError(c, http.StatusNotImplemented, "decision history unavailable", err.Error())
	default:
		getLogger(c, h.Logger).Error("Decision request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
