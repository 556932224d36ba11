package decision

import (
	"context"

	decisionRepo "roomsched/database/repository/decision"
	"roomsched/models"
	"roomsched/services/conflict"

	"go.uber.org/zap"
)

// DecisionService resolves candidates and exposes the decision history.
type DecisionService interface {
	Decide(ctx context.Context, input DecideInput) (*models.DecisionRecord, error)
	GetDecision(ctx context.Context, id string) (*models.DecisionRecord, error)
	ListRoomDecisions(ctx context.Context, roomID string, limit int64) ([]models.DecisionRecord, error)
}

// DecideInput is one resolution request plus the caller identity, if known.
type DecideInput struct {
	Existing  []models.Booking
	Candidate models.Booking
	ClientID  string
}

// DefaultDecisionService implements DecisionService. Cache and Repo are optional.
type DefaultDecisionService struct {
	Resolver   *conflict.Resolver
	PolicyName string
	Cache      DecisionCache
	Repo       decisionRepo.DecisionRepository
	Logger     *zap.Logger
}

// NewDecisionService wires a service for the named tie policy.
func NewDecisionService(policyName string, cache DecisionCache, repo decisionRepo.DecisionRepository, logger *zap.Logger) (*DefaultDecisionService, error) {
	policy, canonical, err := conflict.PolicyByName(policyName)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDecisionService{
		Resolver:   conflict.NewResolver(policy),
		PolicyName: canonical,
		Cache:      cache,
		Repo:       repo,
		Logger:     logger,
	}, nil
}
