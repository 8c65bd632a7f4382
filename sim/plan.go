package sim

import (
	"errors"
	"fmt"

	"github.com/inference-sim/seek-sim/sim/trace"
)

var (
	// ErrUnknownPolicy is returned when a policy name is not in the registry.
	ErrUnknownPolicy = errors.New("unknown policy")
	// ErrInvalidPosition is returned for a negative track position, or one
	// beyond MaxTrack when the track space is bounded.
	ErrInvalidPosition = errors.New("invalid track position")
	// ErrInvalidSchedule is returned when a policy's order is not a
	// permutation of the request set.
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// ScheduleResult is the outcome of planning one policy over one request set.
// Invariants: len(ProcessedOrder) == len(StepDistances) == number of requests,
// and the sum of StepDistances equals TotalDistance.
type ScheduleResult struct {
	AlgorithmName  string `json:"algorithmName"`
	ProcessedOrder []int  `json:"processedOrder"`
	StepDistances  []int  `json:"stepDistances"`
	TotalDistance  int    `json:"totalDistance"`

	// StepDetails and WarehouseIngredients are filled in by callers that
	// have a label source; the planner leaves them empty.
	StepDetails          []string       `json:"stepDetails,omitempty"`
	WarehouseIngredients map[int]string `json:"warehouseIngredients,omitempty"`

	// Trace holds the per-step movement records.
	Trace *trace.PlanTrace `json:"-"`
}

// Describe renders the step details using label to name each serviced position.
func (r *ScheduleResult) Describe(label trace.LabelFunc) []string {
	return r.Trace.Describe(label)
}

// Planner computes schedules. It holds no mutable state and is safe for
// concurrent use.
type Planner struct {
	registry *Registry
	config   PolicyConfig
}

// NewPlanner creates a Planner over registry with the given policy configuration.
func NewPlanner(registry *Registry, cfg PolicyConfig) (*Planner, error) {
	if registry == nil {
		return nil, errors.New("planner requires a policy registry")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy config: %w", err)
	}
	cfg.Direction = ParseDirection(string(cfg.Direction))
	return &Planner{registry: registry, config: cfg}, nil
}

var defaultPlanner = &Planner{registry: DefaultRegistry()}

// Plan schedules requests with the named built-in policy over an unbounded
// track space with automatic sweep direction.
func Plan(policy string, initial int, requests []int) (*ScheduleResult, error) {
	return defaultPlanner.Plan(policy, initial, requests)
}

// Registry returns the planner's policy registry.
func (p *Planner) Registry() *Registry {
	return p.registry
}

// Plan orders requests with the named policy starting from initial and
// computes the per-step and total seek distance.
// requests is never modified. An empty request set yields an empty result.
func (p *Planner) Plan(policy string, initial int, requests []int) (*ScheduleResult, error) {
	name := CanonicalPolicyName(policy)
	pol, err := p.registry.New(policy, p.config)
	if err != nil {
		return nil, err
	}
	if err := p.validatePositions(initial, requests); err != nil {
		return nil, err
	}
	// Policies get their own copy so a misbehaving one cannot alter the caller's slice.
	reqs := append([]int(nil), requests...)
	visits := pol.Order(initial, reqs)
	if err := checkPermutation(visits, len(requests)); err != nil {
		return nil, fmt.Errorf("policy %s: %w", name, err)
	}
	return assemble(name, initial, requests, visits), nil
}

func (p *Planner) validatePositions(initial int, requests []int) error {
	if err := p.checkPosition(initial); err != nil {
		return fmt.Errorf("initial position: %w", err)
	}
	for i, pos := range requests {
		if err := p.checkPosition(pos); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
	}
	return nil
}

func (p *Planner) checkPosition(pos int) error {
	if pos < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidPosition, pos)
	}
	if p.config.MaxTrack > 0 && pos > p.config.MaxTrack {
		return fmt.Errorf("%w: %d exceeds max track %d", ErrInvalidPosition, pos, p.config.MaxTrack)
	}
	return nil
}

func checkPermutation(visits []Visit, n int) error {
	if len(visits) != n {
		return fmt.Errorf("%w: %d visits for %d requests", ErrInvalidSchedule, len(visits), n)
	}
	seen := make([]bool, n)
	for _, v := range visits {
		if v.Index < 0 || v.Index >= n {
			return fmt.Errorf("%w: request index %d out of range", ErrInvalidSchedule, v.Index)
		}
		if seen[v.Index] {
			return fmt.Errorf("%w: request index %d visited twice", ErrInvalidSchedule, v.Index)
		}
		seen[v.Index] = true
	}
	return nil
}

// assemble walks the visits from initial, charging every waypoint and the
// final move of each step to that step.
func assemble(name string, initial int, requests []int, visits []Visit) *ScheduleResult {
	result := &ScheduleResult{
		AlgorithmName:  name,
		ProcessedOrder: make([]int, 0, len(visits)),
		StepDistances:  make([]int, 0, len(visits)),
		Trace:          trace.NewPlanTrace(name, initial, len(visits)),
	}
	cursor := initial
	for step, v := range visits {
		to := requests[v.Index]
		from := cursor
		dist := 0
		for _, via := range v.Via {
			dist += SeekDistance(cursor, via)
			cursor = via
		}
		dist += SeekDistance(cursor, to)
		cursor = to

		result.ProcessedOrder = append(result.ProcessedOrder, to)
		result.StepDistances = append(result.StepDistances, dist)
		result.TotalDistance += dist
		result.Trace.RecordStep(trace.StepRecord{
			Step:         step,
			RequestIndex: v.Index,
			From:         from,
			Via:          append([]int(nil), v.Via...),
			To:           to,
			Distance:     dist,
		})
	}
	return result
}
