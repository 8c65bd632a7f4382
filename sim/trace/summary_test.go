package trace

import (
	"testing"
)

func TestSummarize_NilTrace_ReturnsZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.Steps != 0 || summary.TotalDistance != 0 || summary.Reversals != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestSummarize_CountsReversalsAndExcursions(t *testing.T) {
	// GIVEN an upward sweep to a boundary followed by a downward sweep
	pt := NewPlanTrace("SCAN", 50, 4)
	pt.RecordStep(StepRecord{From: 50, To: 55, Distance: 5})
	pt.RecordStep(StepRecord{From: 55, To: 90, Distance: 35})
	pt.RecordStep(StepRecord{From: 90, Via: []int{199}, To: 10, Distance: 298})
	pt.RecordStep(StepRecord{From: 10, To: 5, Distance: 5})

	// WHEN summarized
	summary := Summarize(pt)

	// THEN one reversal at the boundary and one excursion are reported
	if summary.Steps != 4 {
		t.Errorf("Steps: got %d, want 4", summary.Steps)
	}
	if summary.TotalDistance != 343 {
		t.Errorf("TotalDistance: got %d, want 343", summary.TotalDistance)
	}
	if summary.MaxSeek != 298 {
		t.Errorf("MaxSeek: got %d, want 298", summary.MaxSeek)
	}
	if summary.Reversals != 1 {
		t.Errorf("Reversals: got %d, want 1", summary.Reversals)
	}
	if summary.Excursions != 1 {
		t.Errorf("Excursions: got %d, want 1", summary.Excursions)
	}
}

func TestSummarize_ZeroLengthMovesDoNotReverse(t *testing.T) {
	pt := NewPlanTrace("FCFS", 10, 3)
	pt.RecordStep(StepRecord{From: 10, To: 20, Distance: 10})
	pt.RecordStep(StepRecord{From: 20, To: 20, Distance: 0})
	pt.RecordStep(StepRecord{From: 20, To: 30, Distance: 10})

	if got := Summarize(pt).Reversals; got != 0 {
		t.Errorf("Reversals: got %d, want 0", got)
	}
}
