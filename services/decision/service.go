package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomsched/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAuditDisabled is returned by history lookups when no decision store is configured.
var ErrAuditDisabled = errors.New("decision audit store is disabled")

// Decide resolves the candidate against the existing bookings. Identical requests
// are served from the cache when one is configured, and every served decision is
// written to the audit store. Cache and audit failures are logged, never returned.
func (s *DefaultDecisionService) Decide(ctx context.Context, input DecideInput) (*models.DecisionRecord, error) {
	logger := s.Logger.With(
		zap.String("roomID", input.Candidate.RoomID),
		zap.String("candidateID", input.Candidate.ID),
	)

	var key string
	if s.Cache != nil {
		k, err := fingerprint(s.PolicyName, input.Existing, input.Candidate)
		if err != nil {
			logger.Warn("Failed to fingerprint decision request", zap.Error(err))
		} else {
			key = k
		}
	}

	var (
		decision models.BookingDecision
		cached   bool
	)
	if key != "" {
		hit, err := s.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Decision cache lookup failed", zap.Error(err))
		} else if hit != nil {
			decision, cached = *hit, true
		}
	}

	if !cached {
		d, err := s.Resolver.Resolve(input.Existing, input.Candidate)
		if err != nil {
			logger.Debug("Rejected decision request", zap.Error(err))
			return nil, fmt.Errorf("resolve booking %s: %w", input.Candidate.ID, err)
		}
		decision = d
		if key != "" {
			if err := s.Cache.Set(ctx, key, decision); err != nil {
				logger.Warn("Decision cache store failed", zap.Error(err))
			}
		}
	}

	record := &models.DecisionRecord{
		ID:          uuid.New().String(),
		RoomID:      input.Candidate.RoomID,
		CandidateID: input.Candidate.ID,
		Policy:      s.PolicyName,
		Conflicts:   decision.Conflicts,
		Accepted:    decision.Accepted,
		Cached:      cached,
		ClientID:    input.ClientID,
		CreatedAt:   time.Now().UTC(),
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, record); err != nil {
			logger.Warn("Failed to record decision", zap.String("decisionID", record.ID), zap.Error(err))
		}
	}

	logger.Info("Decision served",
		zap.String("decisionID", record.ID),
		zap.Int("conflicts", len(record.Conflicts)),
		zap.Int("fragments", len(record.Accepted)),
		zap.Bool("cached", cached),
	)
	return record, nil
}

func (s *DefaultDecisionService) GetDecision(ctx context.Context, id string) (*models.DecisionRecord, error) {
	if s.Repo == nil {
		return nil, ErrAuditDisabled
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultDecisionService) ListRoomDecisions(ctx context.Context, roomID string, limit int64) ([]models.DecisionRecord, error) {
	if s.Repo == nil {
		return nil, ErrAuditDisabled
	}
	return s.Repo.ListByRoom(ctx, roomID, limit)
}
