package subtitle

import "time"

// Segment is one timed subtitle cue.
type Segment struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Set is an ordered sequence of segments. Operations that change segment
// content return a new Set; a Set is never mutated after construction.
type Set []Segment

// Indexes returns the segment indices in sequence order.
func (s Set) Indexes() []int {
	out := make([]int, len(s))
	for i, seg := range s {
		out[i] = seg.Index
	}
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}
