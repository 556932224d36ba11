// File: database/repository/decision/interface.go
package decisionRepo

import (
	"context"
	"errors"

	"roomsched/database"
	"roomsched/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDecisionNotFound is returned when no audit record has the requested ID.
var ErrDecisionNotFound = errors.New("decision not found")

// DecisionRepository stores the audit trail of served decisions.
type DecisionRepository interface {
	Create(ctx context.Context, record *models.DecisionRecord) error
	GetByID(ctx context.Context, id string) (*models.DecisionRecord, error)
	ListByRoom(ctx context.Context, roomID string, limit int64) ([]models.DecisionRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoDecisionRepo struct {
	coll *mongo.Collection
}

// NewMongoDecisionRepo constructs a DecisionRepository on the "decisions" collection.
func NewMongoDecisionRepo() DecisionRepository {
	return NewMongoDecisionRepoFor(database.Database())
}

// NewMongoDecisionRepoFor builds the repository on an explicit database handle.
func NewMongoDecisionRepoFor(db *mongo.Database) DecisionRepository {
	return &mongoDecisionRepo{
		coll: db.Collection("decisions"),
	}
}
