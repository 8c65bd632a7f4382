package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/inference-sim/seek-sim/sim"
)

// RequestSpec bounds a randomly generated request set.
type RequestSpec struct {
	Count int `yaml:"count"`
	Min   int `yaml:"min"` // inclusive
	Max   int `yaml:"max"` // inclusive
}

// DefaultRequestSpec matches the generator bounds of the original mock service: 6 requests in [0, 100].
func DefaultRequestSpec() RequestSpec {
	return RequestSpec{Count: 6, Min: 0, Max: 100}
}

// Validate checks that the spec describes a non-empty, non-negative range.
func (s RequestSpec) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", s.Count)
	}
	if s.Min < 0 {
		return fmt.Errorf("min must be non-negative, got %d", s.Min)
	}
	if s.Max < s.Min {
		return fmt.Errorf("max (%d) must be >= min (%d)", s.Max, s.Min)
	}
	// The inclusive span Max-Min+1 must fit in an int.
	if s.Max-s.Min == math.MaxInt {
		return fmt.Errorf("range [%d, %d] is too wide", s.Min, s.Max)
	}
	return nil
}

// GenerateRequests samples spec.Count track positions independently and
// uniformly from [spec.Min, spec.Max]. The result is in arrival order and may
// contain duplicates.
func GenerateRequests(rng *rand.Rand, spec RequestSpec) ([]int, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request spec: %w", err)
	}
	span := spec.Max - spec.Min + 1
	reqs := make([]int, spec.Count)
	for i := range reqs {
		reqs[i] = spec.Min + rng.Intn(span)
	}
	return reqs, nil
}

// GenerateSeeded is GenerateRequests over the requests subsystem of a
// PartitionedRNG keyed by seed. Deterministic given the same seed and spec.
func GenerateSeeded(seed int64, spec RequestSpec) ([]int, error) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	return GenerateRequests(rng.ForSubsystem(sim.SubsystemRequests), spec)
}
