package trace

import (
	"testing"
)

func TestPlanTrace_RecordStep_PreservesOrder(t *testing.T) {
	// GIVEN an empty trace
	pt := NewPlanTrace("SSTF", 50, 2)

	// WHEN two steps are recorded
	pt.RecordStep(StepRecord{Step: 0, RequestIndex: 2, From: 50, To: 55, Distance: 5})
	pt.RecordStep(StepRecord{Step: 1, RequestIndex: 1, From: 55, To: 60, Distance: 5})

	// THEN both are kept in recording order
	if len(pt.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(pt.Steps))
	}
	if pt.Steps[0].To != 55 || pt.Steps[1].To != 60 {
		t.Errorf("unexpected step order: %+v", pt.Steps)
	}
}

func TestStepRecord_Path_IncludesWaypoints(t *testing.T) {
	s := StepRecord{From: 90, Via: []int{199}, To: 10}
	got := s.Path()
	want := []int{90, 199, 10}
	if len(got) != len(want) {
		t.Fatalf("path length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPlanTrace_Describe(t *testing.T) {
	pt := NewPlanTrace("SCAN", 50, 2)
	pt.RecordStep(StepRecord{From: 50, To: 60, Distance: 10})
	pt.RecordStep(StepRecord{From: 60, Via: []int{199}, To: 10, Distance: 328})

	labels := map[int]string{60: "Ingredient 7"}
	label := func(pos int) (string, bool) {
		name, ok := labels[pos]
		return name, ok
	}

	tests := []struct {
		name  string
		label LabelFunc
		want  []string
	}{
		{
			name:  "with labels",
			label: label,
			want: []string{
				"50 -> 60 (Ingredient 7) dist=10",
				"60 -> 199 -> 10 (unknown) dist=328",
			},
		},
		{
			name:  "without labels",
			label: nil,
			want: []string{
				"50 -> 60 dist=10",
				"60 -> 199 -> 10 dist=328",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pt.Describe(tc.label)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d lines, want %d", len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPlanTrace_Describe_NilTrace(t *testing.T) {
	var pt *PlanTrace
	if got := pt.Describe(nil); got != nil {
		t.Errorf("expected nil for nil trace, got %v", got)
	}
}
