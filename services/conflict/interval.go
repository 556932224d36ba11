package conflict

import (
	"sort"
	"time"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start Instant
	End   Instant
}

// Empty reports whether the interval contains no instant at all.
func (iv Interval) Empty() bool {
	return iv.Start >= iv.End
}

// Len is the interval length in milliseconds; zero for empty or inverted intervals.
func (iv Interval) Len() int64 {
	if iv.Empty() {
		return 0
	}
	return int64(iv.End - iv.Start)
}

// Duration is Len as a time.Duration.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.Len()) * time.Millisecond
}

// Overlaps is true only for a shared interior; touching endpoints do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && iv.End > o.Start
}

// Intersect returns the common part of both intervals and whether there is one.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	if !iv.Overlaps(o) {
		return Interval{}, false
	}
	return Interval{Start: max(iv.Start, o.Start), End: min(iv.End, o.End)}, true
}

// SegmentSet is the set of sub-ranges of a candidate still allowed.
type SegmentSet []Interval

// Subtract removes cut from every segment. Segments that miss cut are kept as is,
// the others are replaced by their non-empty remainders before and after cut.
func (s SegmentSet) Subtract(cut Interval) SegmentSet {
	out := make(SegmentSet, 0, len(s)+1)
	for _, seg := range s {
		if seg.End <= cut.Start || seg.Start >= cut.End {
			out = append(out, seg)
			continue
		}
		if seg.Start < cut.Start {
			out = append(out, Interval{Start: seg.Start, End: cut.Start})
		}
		if seg.End > cut.End {
			out = append(out, Interval{Start: cut.End, End: seg.End})
		}
	}
	return out
}

// Merge sorts a copy of the set by start and joins segments whose end is exactly
// the next one's start. Segments separated by a gap stay apart.
func (s SegmentSet) Merge() SegmentSet {
	sorted := make(SegmentSet, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make(SegmentSet, 0, len(sorted))
	for _, seg := range sorted {
		if n := len(merged); n > 0 && merged[n-1].End == seg.Start {
			merged[n-1].End = seg.End
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// Total sums the length of every segment in milliseconds.
func (s SegmentSet) Total() int64 {
	var total int64
	for _, seg := range s {
		total += seg.Len()
	}
	return total
}
