package dispatch

import "strconv"

// Rank is a unit's position in a zone's run card. A unit whose home station
// is not on the card has no rank; an unknown rank never participates in
// minimum or threshold comparisons.
type Rank struct {
	N     int
	Known bool
}

// KnownRank returns a rank at position n.
func KnownRank(n int) Rank {
	return Rank{N: n, Known: true}
}

// UnknownRank is the absent rank.
var UnknownRank = Rank{}

// Before reports whether r is strictly earlier than other. An unknown rank
// is never earlier than anything; a known rank is earlier than an unknown
// one.
func (r Rank) Before(other Rank) bool {
	if !r.Known {
		return false
	}
	if !other.Known {
		return true
	}
	return r.N < other.N
}

// String renders the rank for traces and display.
func (r Rank) String() string {
	if !r.Known {
		return "-"
	}
	return strconv.Itoa(r.N)
}
