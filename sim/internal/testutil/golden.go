// Package testutil provides shared test infrastructure for the seek planner.
// It holds the golden schedule dataset types and assertion helpers used by
// the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one policy run over one request set with its
// hand-checked schedule.
type GoldenTestCase struct {
	Name      string `json:"name"`
	Policy    string `json:"policy"`
	Initial   int    `json:"initial"`
	Requests  []int  `json:"requests"`
	Direction string `json:"direction"`
	MaxTrack  int    `json:"max_track"`

	Expected GoldenSchedule `json:"expected"`
}

// GoldenSchedule represents the expected schedule from a golden test case.
type GoldenSchedule struct {
	ProcessedOrder []int `json:"processed_order"`
	StepDistances  []int `json:"step_distances"`
	TotalDistance  int   `json:"total_distance"`
	Reversals      int   `json:"reversals"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
