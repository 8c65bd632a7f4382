package trace

import (
	"fmt"
	"strings"
)

// UnknownLabel is rendered for track positions the label source cannot name.
const UnknownLabel = "unknown"

// LabelFunc resolves a track position to a display label.
type LabelFunc func(position int) (string, bool)

// PlanTrace collects the step records of one schedule.
type PlanTrace struct {
	Policy  string
	Initial int
	Steps   []StepRecord
}

// NewPlanTrace creates a PlanTrace ready for recording.
func NewPlanTrace(policy string, initial int, capacity int) *PlanTrace {
	return &PlanTrace{
		Policy:  policy,
		Initial: initial,
		Steps:   make([]StepRecord, 0, capacity),
	}
}

// RecordStep appends a step record.
func (pt *PlanTrace) RecordStep(record StepRecord) {
	pt.Steps = append(pt.Steps, record)
}

// Describe renders one line per step, e.g. "50 -> 55 (Ingredient 6) dist=5".
// Waypoints appear inline: "90 -> 199 -> 10 (Ingredient 2) dist=298".
// A nil label omits the parenthesized label.
func (pt *PlanTrace) Describe(label LabelFunc) []string {
	if pt == nil {
		return nil
	}
	lines := make([]string, 0, len(pt.Steps))
	for _, s := range pt.Steps {
		lines = append(lines, describeStep(s, label))
	}
	return lines
}

func describeStep(s StepRecord, label LabelFunc) string {
	var b strings.Builder
	for i, pos := range s.Path() {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "%d", pos)
	}
	if label != nil {
		name, ok := label(s.To)
		if !ok {
			name = UnknownLabel
		}
		fmt.Fprintf(&b, " (%s)", name)
	}
	fmt.Fprintf(&b, " dist=%d", s.Distance)
	return b.String()
}
