// File: services/decision/cache.go
package decision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"roomsched/models"

	"github.com/go-redis/redis/v8"
)

const decisionCachePrefix = "decision:"

// DecisionCache holds resolver outcomes keyed by request fingerprint.
// Get returns (nil, nil) on a miss.
type DecisionCache interface {
	Get(ctx context.Context, key string) (*models.BookingDecision, error)
	Set(ctx context.Context, key string, decision models.BookingDecision) error
}

type RedisDecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDecisionCache(client *redis.Client, ttl time.Duration) *RedisDecisionCache {
	return &RedisDecisionCache{client: client, ttl: ttl}
}

func (s *RedisDecisionCache) Get(ctx context.Context, key string) (*models.BookingDecision, error) {
	data, err := s.client.Get(ctx, decisionCachePrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var decision models.BookingDecision
	if err := json.Unmarshal([]byte(data), &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}

func (s *RedisDecisionCache) Set(ctx context.Context, key string, decision models.BookingDecision) error {
	b, err := json.Marshal(decision)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, decisionCachePrefix+key, b, s.ttl).Err()
}

// fingerprint identifies a request by everything the resolver looks at: the
// policy, the candidate and the same-room bookings in their given order.
func fingerprint(policy string, existing []models.Booking, candidate models.Booking) (string, error) {
	sameRoom := make([]models.Booking, 0, len(existing))
	for _, b := range existing {
		if b.RoomID == candidate.RoomID {
			sameRoom = append(sameRoom, b)
		}
	}
	payload, err := json.Marshal(struct {
		Policy    string           `json:"policy"`
		Existing  []models.Booking `json:"existing"`
		Candidate models.Booking   `json:"candidate"`
	}{policy, sameRoom, candidate})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
