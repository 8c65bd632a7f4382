package trace

// TraceSummary aggregates movement statistics from a PlanTrace.
type TraceSummary struct {
	Steps         int
	TotalDistance int
	MaxSeek       int
	Reversals     int // changes of movement direction, waypoints included
	Excursions    int // steps that touched at least one waypoint
}

// Summarize computes aggregate statistics from a PlanTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PlanTrace) *TraceSummary {
	summary := &TraceSummary{}
	if pt == nil {
		return summary
	}

	summary.Steps = len(pt.Steps)
	heading := 0 // -1 down, +1 up, 0 not yet moving
	for _, s := range pt.Steps {
		summary.TotalDistance += s.Distance
		if s.Distance > summary.MaxSeek {
			summary.MaxSeek = s.Distance
		}
		if len(s.Via) > 0 {
			summary.Excursions++
		}
		path := s.Path()
		for i := 1; i < len(path); i++ {
			var d int
			switch {
			case path[i] > path[i-1]:
				d = 1
			case path[i] < path[i-1]:
				d = -1
			default:
				continue
			}
			if heading != 0 && d != heading {
				summary.Reversals++
			}
			heading = d
		}
	}
	return summary
}
