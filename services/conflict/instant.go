package conflict

import (
	"fmt"
	"time"
)

// Instant is a UTC timestamp with millisecond precision, stored as milliseconds
// since the Unix epoch. Ordering is plain integer ordering.
type Instant int64

// canonicalLayout is the only form instants are ever written in.
const canonicalLayout = "2006-01-02T15:04:05.000Z"

// Accepted input layouts. Anything with an explicit offset is converted to UTC;
// the date-only form is read as midnight UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

// ParseInstant reads an ISO-8601 timestamp. Digits below the millisecond are
// truncated. Surrounding whitespace is not tolerated.
func ParseInstant(s string) (Instant, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty timestamp", ErrMalformedInstant)
	}
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return InstantOf(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrMalformedInstant, s)
}

// InstantOf truncates t to the millisecond.
func InstantOf(t time.Time) Instant {
	return Instant(t.UnixMilli())
}

// Time converts back to a UTC time.Time.
func (i Instant) Time() time.Time {
	return time.UnixMilli(int64(i)).UTC()
}

// String returns the canonical form, e.g. 2025-01-01T10:00:00.000Z.
func (i Instant) String() string {
	return i.Time().Format(canonicalLayout)
}

// Canonicalize parses s and re-serializes it, so that two semantically equal
// timestamps always compare equal as strings.
func Canonicalize(s string) (string, error) {
	i, err := ParseInstant(s)
	if err != nil {
		return "", err
	}
	return i.String(), nil
}
