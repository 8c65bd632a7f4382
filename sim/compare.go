package sim

import (
	"golang.org/x/sync/errgroup"
)

// PlanEach plans the same request set under every named policy.
// Policies are evaluated concurrently over the shared read-only input; the
// result maps each canonical policy name to its schedule. The first error
// (in completion order) is returned and no partial map is produced.
func (p *Planner) PlanEach(policies []string, initial int, requests []int) (map[string]*ScheduleResult, error) {
	results := make([]*ScheduleResult, len(policies))
	var g errgroup.Group
	for i, name := range policies {
		i, name := i, name
		g.Go(func() error {
			res, err := p.Plan(name, initial, requests)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*ScheduleResult, len(results))
	for _, res := range results {
		out[res.AlgorithmName] = res
	}
	return out, nil
}

// PlanEach plans requests under each named built-in policy with the default planner.
func PlanEach(policies []string, initial int, requests []int) (map[string]*ScheduleResult, error) {
	return defaultPlanner.PlanEach(policies, initial, requests)
}
