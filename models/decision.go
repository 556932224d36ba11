package models

import "time"

// DecisionRequest is the input of one resolution.
type DecisionRequest struct {
	Existing  []Booking `json:"existing"`
	Candidate Booking   `json:"candidate"`
}

// DecisionRecord is the audit entry stored for every resolution served.
type DecisionRecord struct {
	ID          string         `bson:"id" json:"decisionId"`
	RoomID      string         `bson:"room_id" json:"roomId"`
	CandidateID string         `bson:"candidate_id" json:"candidateId"`
	Policy      string         `bson:"policy" json:"policy"`
	Conflicts   []ConflictInfo `bson:"conflicts" json:"conflicts"`
	Accepted    []Booking      `bson:"accepted" json:"accepted"`
	Cached      bool           `bson:"cached" json:"cached"`
	ClientID    string         `bson:"client_id,omitempty" json:"clientId,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
}

// Decision returns the resolver outcome carried by the record.
func (r *DecisionRecord) Decision() BookingDecision {
	return BookingDecision{Conflicts: r.Conflicts, Accepted: r.Accepted}
}
