package models

// Booking is a room reservation as exchanged with callers. Start and End are
// ISO-8601 timestamps; the resolver treats them as the half-open range [Start, End).
type Booking struct {
	ID       string `bson:"id" json:"id"`             // Unique per stored booking
	RoomID   string `bson:"room_id" json:"roomId"`    // Bookings only conflict within one room
	Title    string `bson:"title" json:"title"`       // Opaque label
	Start    string `bson:"start" json:"start"`       // ISO-8601 instant
	End      string `bson:"end" json:"end"`           // ISO-8601 instant
	Priority float64 `bson:"priority" json:"priority"` // Higher value wins contested time
}

// ConflictInfo records that the candidate overlapped an existing booking,
// whichever side kept the contested time.
type ConflictInfo struct {
	ExistingID   string `bson:"existing_id" json:"existingId"`
	OverlapStart string `bson:"overlap_start" json:"overlapStart"`
	OverlapEnd   string `bson:"overlap_end" json:"overlapEnd"`
}

// BookingDecision is the outcome for one candidate. Conflicts follow the order of
// the existing bookings; Accepted fragments are sorted by start.
type BookingDecision struct {
	Conflicts []ConflictInfo `bson:"conflicts" json:"conflicts"`
	Accepted  []Booking      `bson:"accepted" json:"accepted"`
}
