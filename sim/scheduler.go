package sim

import (
	"sort"
)

// FCFSPolicy services requests in arrival order.
type FCFSPolicy struct{}

func (f *FCFSPolicy) Order(_ int, reqs []int) []Visit {
	out := make([]Visit, len(reqs))
	for i := range reqs {
		out[i] = Visit{Index: i}
	}
	return out
}

// SSTFPolicy (Shortest-Seek-Time-First) repeatedly services the pending
// request nearest to the current head position. The reference point moves
// with every pick, so this is iterative nearest-neighbor selection rather
// than a sort by distance from the initial head.
// Ties go to the earliest arrival. Greedy: not globally optimal.
type SSTFPolicy struct{}

func (s *SSTFPolicy) Order(head int, reqs []int) []Visit {
	done := make([]bool, len(reqs))
	out := make([]Visit, 0, len(reqs))
	cursor := head
	for range reqs {
		best := -1
		for i, pos := range reqs {
			if done[i] {
				continue
			}
			if best < 0 || SeekDistance(cursor, pos) < SeekDistance(cursor, reqs[best]) {
				best = i
			}
		}
		done[best] = true
		out = append(out, Visit{Index: best})
		cursor = reqs[best]
	}
	return out
}

// SCANPolicy (elevator) services every request in the sweep direction in
// position order, continues to the boundary, reverses, and services the rest.
// Requests at the head position are serviced first.
//
// The lower boundary is track 0. The upper boundary is MaxTrack when set,
// otherwise the highest pending request, which makes an upward-first SCAN over
// an unbounded track space indistinguishable from LOOK.
type SCANPolicy struct {
	Direction Direction
	MaxTrack  int
}

func (s *SCANPolicy) Order(head int, reqs []int) []Visit {
	sets := splitAtHead(head, reqs)
	out := visitsOf(sets.at)
	if resolveDirection(s.Direction, sets) == DirectionDown {
		out = append(out, visitsOf(sets.below)...)
		return appendAfterTurn(out, reqs, head, visitsOf(sets.above), 0)
	}
	out = append(out, visitsOf(sets.above)...)
	return appendAfterTurn(out, reqs, head, visitsOf(sets.below), upperBoundary(s.MaxTrack, head, reqs, sets))
}

// AscendingSCANPolicy is a simplified SCAN that assumes the head only moves
// toward higher tracks and never reverses: requests are serviced in ascending
// position order regardless of the head position. It is not full SCAN.
type AscendingSCANPolicy struct{}

func (a *AscendingSCANPolicy) Order(_ int, reqs []int) []Visit {
	idx := make([]int, len(reqs))
	for i := range reqs {
		idx[i] = i
	}
	sortByPosition(idx, reqs, true)
	return visitsOf(idx)
}

// LOOKPolicy is SCAN that reverses at the last pending request in the sweep
// direction instead of travelling on to the boundary.
type LOOKPolicy struct {
	Direction Direction
}

func (l *LOOKPolicy) Order(head int, reqs []int) []Visit {
	sets := splitAtHead(head, reqs)
	out := visitsOf(sets.at)
	if resolveDirection(l.Direction, sets) == DirectionDown {
		out = append(out, visitsOf(sets.below)...)
		return append(out, visitsOf(sets.above)...)
	}
	out = append(out, visitsOf(sets.above)...)
	return append(out, visitsOf(sets.below)...)
}

// CSCANPolicy (circular SCAN) sweeps in one direction to the boundary, jumps
// to the opposite boundary, and continues in the same direction. The jump is
// charged as movement.
type CSCANPolicy struct {
	Direction Direction
	MaxTrack  int
}

func (c *CSCANPolicy) Order(head int, reqs []int) []Visit {
	sets := splitAtHead(head, reqs)
	top := upperBoundary(c.MaxTrack, head, reqs, sets)
	out := visitsOf(sets.at)
	if resolveDirection(c.Direction, sets) == DirectionDown {
		out = append(out, visitsOf(sets.below)...)
		wrapped := append([]int(nil), sets.above...)
		sortByPosition(wrapped, reqs, false)
		return appendAfterTurn(out, reqs, head, visitsOf(wrapped), 0, top)
	}
	out = append(out, visitsOf(sets.above)...)
	wrapped := append([]int(nil), sets.below...)
	sortByPosition(wrapped, reqs, true)
	return appendAfterTurn(out, reqs, head, visitsOf(wrapped), top, 0)
}

// CLOOKPolicy (circular LOOK) sweeps to the last pending request in the
// sweep direction, then jumps straight to the farthest pending request on the
// other side and continues in the same direction.
type CLOOKPolicy struct {
	Direction Direction
}

func (c *CLOOKPolicy) Order(head int, reqs []int) []Visit {
	sets := splitAtHead(head, reqs)
	out := visitsOf(sets.at)
	if resolveDirection(c.Direction, sets) == DirectionDown {
		out = append(out, visitsOf(sets.below)...)
		wrapped := append([]int(nil), sets.above...)
		sortByPosition(wrapped, reqs, false)
		return append(out, visitsOf(wrapped)...)
	}
	out = append(out, visitsOf(sets.above)...)
	wrapped := append([]int(nil), sets.below...)
	sortByPosition(wrapped, reqs, true)
	return append(out, visitsOf(wrapped)...)
}

// SeekDistance is the head movement between two track positions.
func SeekDistance(from, to int) int {
	if to > from {
		return to - from
	}
	return from - to
}

// sweepSets partitions request indices relative to the head.
// above is in ascending and below in descending position order.
type sweepSets struct {
	at, above, below []int
}

func splitAtHead(head int, reqs []int) sweepSets {
	var s sweepSets
	for i, pos := range reqs {
		switch {
		case pos == head:
			s.at = append(s.at, i)
		case pos > head:
			s.above = append(s.above, i)
		default:
			s.below = append(s.below, i)
		}
	}
	sortByPosition(s.above, reqs, true)
	sortByPosition(s.below, reqs, false)
	return s
}

// resolveDirection sweeps up when at least as many requests lie at or above
// the head as below it.
func resolveDirection(d Direction, s sweepSets) Direction {
	if d != DirectionAuto {
		return d
	}
	if len(s.at)+len(s.above) >= len(s.below) {
		return DirectionUp
	}
	return DirectionDown
}

func upperBoundary(maxTrack, head int, reqs []int, s sweepSets) int {
	top := head
	if n := len(s.above); n > 0 {
		top = reqs[s.above[n-1]]
	}
	if maxTrack > top {
		return maxTrack
	}
	return top
}

// sortByPosition orders indices by request position, ties by arrival index.
func sortByPosition(idx []int, reqs []int, ascending bool) {
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := reqs[idx[a]], reqs[idx[b]]
		if pa != pb {
			if ascending {
				return pa < pb
			}
			return pa > pb
		}
		return idx[a] < idx[b]
	})
}

func visitsOf(idx []int) []Visit {
	out := make([]Visit, len(idx))
	for i, j := range idx {
		out[i] = Visit{Index: j}
	}
	return out
}

// appendAfterTurn appends tail, routing the head through via before the
// first tail request. Waypoints that coincide with the head's position at the
// turn, or a final waypoint equal to the first tail request, are dropped so a
// zero-length excursion does not show up in traces.
func appendAfterTurn(out []Visit, reqs []int, head int, tail []Visit, via ...int) []Visit {
	if len(tail) == 0 {
		return out
	}
	cursor := head
	if n := len(out); n > 0 {
		cursor = reqs[out[n-1].Index]
	}
	var path []int
	for _, p := range via {
		if p == cursor {
			continue
		}
		path = append(path, p)
		cursor = p
	}
	if n := len(path); n > 0 && path[n-1] == reqs[tail[0].Index] {
		path = path[:n-1]
	}
	tail[0].Via = path
	return append(out, tail...)
}
