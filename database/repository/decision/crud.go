// File: database/repository/decision/crud.go
package decisionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomsched/models"
)

// DefaultListLimit caps ListByRoom when the caller passes a non-positive limit.
const DefaultListLimit = 50

func (r *mongoDecisionRepo) Create(ctx context.Context, record *models.DecisionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("error inserting decision %s: %w", record.ID, err)
	}
	return nil
}

func (r *mongoDecisionRepo) GetByID(ctx context.Context, id string) (*models.DecisionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.DecisionRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDecisionNotFound
		}
		return nil, fmt.Errorf("error fetching decision with id %s: %w", id, err)
	}
	return &record, nil
}

func (r *mongoDecisionRepo) ListByRoom(ctx context.Context, roomID string, limit int64) ([]models.DecisionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching decisions for room %s: %w", roomID, err)
	}
	defer cursor.Close(ctx)

	records := make([]models.DecisionRecord, 0)
	for cursor.Next(ctx) {
		var rec models.DecisionRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("error decoding decision: %w", err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return records, nil
}
