package decision

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	decisionRepo "roomsched/database/repository/decision"
	"roomsched/models"
	"roomsched/services/conflict"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]models.BookingDecision
	gets    int
	sets    int
	failGet error
	failSet error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]models.BookingDecision{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (*models.BookingDecision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet != nil {
		return nil, c.failGet
	}
	d, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (c *fakeCache) Set(_ context.Context, key string, d models.BookingDecision) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.failSet != nil {
		return c.failSet
	}
	c.entries[key] = d
	return nil
}

type fakeRepo struct {
	mu      sync.Mutex
	records []models.DecisionRecord
	failErr error
}

func (r *fakeRepo) Create(_ context.Context, rec *models.DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.DecisionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, decisionRepo.ErrDecisionNotFound
}

func (r *fakeRepo) ListByRoom(_ context.Context, roomID string, limit int64) ([]models.DecisionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.DecisionRecord, 0)
	for i := len(r.records) - 1; i >= 0 && (limit <= 0 || int64(len(out)) < limit); i-- {
		if r.records[i].RoomID == roomID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeRepo) EnsureIndexes(context.Context) error { return nil }

func roomBooking(id, room, start, end string, priority float64) models.Booking {
	return models.Booking{
		ID:       id,
		RoomID:   room,
		Start:    "2025-01-01T" + start + ":00Z",
		End:      "2025-01-01T" + end + ":00Z",
		Priority: priority,
	}
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	existing := []models.Booking{roomBooking("A", "R1", "10:00", "11:00", 5)}
	candidate := roomBooking("C", "R1", "10:30", "11:30", 1)

	t.Run("resolves, caches and records", func(t *testing.T) {
		cache, repo := newFakeCache(), &fakeRepo{}
		svc, err := NewDecisionService("", cache, repo, nil)
		require.NoError(t, err)

		rec, err := svc.Decide(ctx, DecideInput{Existing: existing, Candidate: candidate, ClientID: "desk"})
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "R1", rec.RoomID)
		assert.Equal(t, "C", rec.CandidateID)
		assert.Equal(t, conflict.PolicyIncumbent, rec.Policy)
		assert.Equal(t, "desk", rec.ClientID)
		assert.False(t, rec.Cached)
		require.Len(t, rec.Accepted, 1)
		assert.Equal(t, "2025-01-01T11:00:00.000Z", rec.Accepted[0].Start)
		assert.Len(t, rec.Conflicts, 1)

		assert.Equal(t, 1, cache.sets)
		require.Len(t, repo.records, 1)
		assert.Equal(t, rec.ID, repo.records[0].ID)
	})

	t.Run("serves repeats from cache", func(t *testing.T) {
		cache, repo := newFakeCache(), &fakeRepo{}
		svc, err := NewDecisionService("incumbent", cache, repo, nil)
		require.NoError(t, err)

		first, err := svc.Decide(ctx, DecideInput{Existing: existing, Candidate: candidate})
		require.NoError(t, err)
		second, err := svc.Decide(ctx, DecideInput{Existing: existing, Candidate: candidate})
		require.NoError(t, err)

		assert.True(t, second.Cached)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.Decision(), second.Decision())
		assert.Equal(t, 1, cache.sets)
		assert.Len(t, repo.records, 2)
	})

	t.Run("other-room bookings do not change the cache key", func(t *testing.T) {
		other := roomBooking("X", "R2", "08:00", "09:00", 1)
		a, err := fingerprint("incumbent", existing, candidate)
		require.NoError(t, err)
		b, err := fingerprint("incumbent", append([]models.Booking{other}, existing...), candidate)
		require.NoError(t, err)
		c, err := fingerprint("candidate", existing, candidate)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("cache and audit failures do not fail the decision", func(t *testing.T) {
		cache := newFakeCache()
		cache.failGet = errors.New("redis down")
		cache.failSet = errors.New("redis down")
		repo := &fakeRepo{failErr: errors.New("mongo down")}
		svc, err := NewDecisionService("", cache, repo, nil)
		require.NoError(t, err)

		rec, err := svc.Decide(ctx, DecideInput{Existing: existing, Candidate: candidate})
		require.NoError(t, err)
		assert.Len(t, rec.Accepted, 1)
	})

	t.Run("validation errors are returned and not cached", func(t *testing.T) {
		cache := newFakeCache()
		svc, err := NewDecisionService("", cache, nil, nil)
		require.NoError(t, err)

		bad := roomBooking("C", "R1", "11:00", "10:00", 1)
		_, err = svc.Decide(ctx, DecideInput{Candidate: bad})
		require.Error(t, err)
		assert.ErrorIs(t, err, conflict.ErrInvalidInterval)
		assert.True(t, conflict.IsValidation(err))
		assert.Zero(t, cache.sets)
	})

	t.Run("candidate policy hands ties to the newcomer", func(t *testing.T) {
		svc, err := NewDecisionService("candidate", nil, nil, nil)
		require.NoError(t, err)

		rec, err := svc.Decide(ctx, DecideInput{
			Existing:  []models.Booking{roomBooking("A", "R1", "10:00", "11:00", 2)},
			Candidate: roomBooking("C", "R1", "10:00", "11:00", 2),
		})
		require.NoError(t, err)
		assert.Len(t, rec.Accepted, 1)
		assert.Equal(t, "candidate", rec.Policy)
	})
}

func TestPolicyAliasesShareRecordsAndCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	input := DecideInput{
		Existing:  []models.Booking{roomBooking("A", "R1", "10:00", "11:00", 2)},
		Candidate: roomBooking("C", "R1", "10:30", "11:30", 1),
	}

	alias, err := NewDecisionService("First-Writer-Wins", cache, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, conflict.PolicyIncumbent, alias.PolicyName)

	rec, err := alias.Decide(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, conflict.PolicyIncumbent, rec.Policy)
	assert.False(t, rec.Cached)

	canonical, err := NewDecisionService(conflict.PolicyIncumbent, cache, nil, nil)
	require.NoError(t, err)
	rec, err = canonical.Decide(ctx, input)
	require.NoError(t, err)
	assert.True(t, rec.Cached)
	assert.Len(t, cache.entries, 1)
}

func TestNewDecisionServiceRejectsUnknownPolicy(t *testing.T) {
	_, err := NewDecisionService("loudest-wins", nil, nil, nil)
	assert.Error(t, err)
}

func TestDecisionHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without a store", func(t *testing.T) {
		svc, err := NewDecisionService("", nil, nil, nil)
		require.NoError(t, err)

		_, err = svc.GetDecision(ctx, "x")
		assert.ErrorIs(t, err, ErrAuditDisabled)
		_, err = svc.ListRoomDecisions(ctx, "R1", 10)
		assert.ErrorIs(t, err, ErrAuditDisabled)
	})

	t.Run("reads back recorded decisions", func(t *testing.T) {
		repo := &fakeRepo{}
		svc, err := NewDecisionService("", nil, repo, nil)
		require.NoError(t, err)

		first, err := svc.Decide(ctx, DecideInput{Candidate: roomBooking("C1", "R1", "09:00", "10:00", 1)})
		require.NoError(t, err)
		second, err := svc.Decide(ctx, DecideInput{Candidate: roomBooking("C2", "R1", "10:00", "11:00", 1)})
		require.NoError(t, err)
		_, err = svc.Decide(ctx, DecideInput{Candidate: roomBooking("C3", "R2", "10:00", "11:00", 1)})
		require.NoError(t, err)

		got, err := svc.GetDecision(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "C1", got.CandidateID)

		_, err = svc.GetDecision(ctx, "missing")
		assert.ErrorIs(t, err, decisionRepo.ErrDecisionNotFound)

		list, err := svc.ListRoomDecisions(ctx, "R1", 10)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
	})
}
