package conflict

import (
	"fmt"

	"roomsched/models"
)

// Claim is an existing booking reduced to what the fold needs.
type Claim struct {
	ID       string
	Span     Interval
	Priority float64
}

// Overlap is the intersection of the candidate with one claim.
type Overlap struct {
	ID   string
	Span Interval
}

// Evaluate runs the conflict pipeline on plain instants; span must be non-empty.
// Every claim that overlaps span yields an Overlap, in claim order. Claims the
// candidate does not beat under policy are subtracted from the allowed segments
// one after another, and the survivors are merged.
func Evaluate(span Interval, priority float64, claims []Claim, policy PriorityPolicy) ([]Overlap, SegmentSet) {
	if policy == nil {
		policy = IncumbentWinsTies
	}

	overlaps := make([]Overlap, 0)
	allowed := SegmentSet{span}
	for _, c := range claims {
		cut, ok := span.Intersect(c.Span)
		if !ok {
			continue
		}
		overlaps = append(overlaps, Overlap{ID: c.ID, Span: cut})
		if policy(priority, c.Priority) {
			continue
		}
		allowed = allowed.Subtract(cut)
	}
	return overlaps, allowed.Merge()
}

// Resolver turns bookings into a decision. The zero value uses IncumbentWinsTies.
type Resolver struct {
	Policy PriorityPolicy
}

// NewResolver returns a resolver with the given tie policy.
func NewResolver(policy PriorityPolicy) *Resolver {
	return &Resolver{Policy: policy}
}

// Resolve is Resolver.Resolve with the default policy.
func Resolve(existing []models.Booking, candidate models.Booking) (models.BookingDecision, error) {
	var r Resolver
	return r.Resolve(existing, candidate)
}

// Resolve decides which parts of candidate can be granted next to existing.
// Only bookings in the candidate's room take part. A malformed timestamp or an
// empty/inverted interval on the candidate or on a same-room booking rejects
// the whole request with a *ValidationError. existing is never modified.
func (r *Resolver) Resolve(existing []models.Booking, candidate models.Booking) (models.BookingDecision, error) {
	span, err := spanOf(candidate)
	if err != nil {
		return models.BookingDecision{}, err
	}

	claims := make([]Claim, 0, len(existing))
	for _, ex := range existing {
		if ex.RoomID != candidate.RoomID {
			continue
		}
		exSpan, err := spanOf(ex)
		if err != nil {
			return models.BookingDecision{}, err
		}
		claims = append(claims, Claim{ID: ex.ID, Span: exSpan, Priority: ex.Priority})
	}

	overlaps, segments := Evaluate(span, candidate.Priority, claims, r.Policy)

	decision := models.BookingDecision{
		Conflicts: make([]models.ConflictInfo, 0, len(overlaps)),
		Accepted:  make([]models.Booking, 0, len(segments)),
	}
	for _, o := range overlaps {
		decision.Conflicts = append(decision.Conflicts, models.ConflictInfo{
			ExistingID:   o.ID,
			OverlapStart: o.Span.Start.String(),
			OverlapEnd:   o.Span.End.String(),
		})
	}
	for k, seg := range segments {
		fragment := candidate
		fragment.ID = fmt.Sprintf("%s_part%d", candidate.ID, k+1)
		fragment.Start = seg.Start.String()
		fragment.End = seg.End.String()
		decision.Accepted = append(decision.Accepted, fragment)
	}
	return decision, nil
}

func spanOf(b models.Booking) (Interval, error) {
	start, err := ParseInstant(b.Start)
	if err != nil {
		return Interval{}, newValidationError(b.ID, "start", err)
	}
	end, err := ParseInstant(b.End)
	if err != nil {
		return Interval{}, newValidationError(b.ID, "end", err)
	}
	span := Interval{Start: start, End: end}
	if span.Empty() {
		return Interval{}, newValidationError(b.ID, "", fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, b.Start, b.End))
	}
	return span, nil
}
