package conflict

import (
	"fmt"
	"strings"
)

// PriorityPolicy decides who keeps contested time. It returns true when the
// candidate keeps the overlap with an existing booking.
type PriorityPolicy func(candidate, existing float64) bool

// IncumbentWinsTies lets the candidate keep time only when it strictly outranks
// the existing booking. This is the default.
func IncumbentWinsTies(candidate, existing float64) bool {
	return candidate > existing
}

// CandidateWinsTies hands equal-priority contests to the newcomer.
func CandidateWinsTies(candidate, existing float64) bool {
	return candidate >= existing
}

const (
	PolicyIncumbent = "incumbent"
	PolicyCandidate = "candidate"
)

// PolicyByName maps a configuration value to a policy and its canonical name,
// PolicyIncumbent or PolicyCandidate. An empty name selects the default.
func PolicyByName(name string) (PriorityPolicy, string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyIncumbent, "first-writer-wins":
		return IncumbentWinsTies, PolicyIncumbent, nil
	case PolicyCandidate, "last-writer-wins":
		return CandidateWinsTies, PolicyCandidate, nil
	default:
		return nil, "", fmt.Errorf("unknown tie policy %q", name)
	}
}
