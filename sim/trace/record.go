// Package trace provides per-step movement records for seek schedules.
// This package has no dependencies on sim/; it stores plain data types.
package trace

// StepRecord captures a single head movement that services one request.
type StepRecord struct {
	Step         int   // 0-based service position
	RequestIndex int   // index of the request in arrival order
	From         int   // head position before the move
	Via          []int // waypoints touched on the way (sweep boundaries); nil for a direct move
	To           int   // serviced track position
	Distance     int   // total movement including waypoints
}

// Path returns every position the head occupies during the step, From first and To last.
func (r StepRecord) Path() []int {
	path := make([]int, 0, len(r.Via)+2)
	path = append(path, r.From)
	path = append(path, r.Via...)
	return append(path, r.To)
}
