// FILE: database/repository/decision/indexes.go
package decisionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the decisions collection.
func (r *mongoDecisionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Room history, newest first
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("room_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "candidate_id", Value: 1}},
			Options: options.Index().SetName("candidate_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create decision indexes: %w", err)
	}
	return nil
}
