package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanEach_MatchesIndividualPlans(t *testing.T) {
	reqs := []int{10, 60, 55, 90, 5}
	results, err := PlanEach(ComparePolicies, 50, reqs)
	require.NoError(t, err)
	require.Len(t, results, len(ComparePolicies))

	for _, name := range ComparePolicies {
		single, err := Plan(name, 50, reqs)
		require.NoError(t, err)
		got, ok := results[name]
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, single.ProcessedOrder, got.ProcessedOrder, name)
		assert.Equal(t, single.TotalDistance, got.TotalDistance, name)
	}
}

func TestPlanEach_KeysAreCanonical(t *testing.T) {
	results, err := PlanEach([]string{"fcfs", "sstf"}, 0, []int{4, 2})
	require.NoError(t, err)
	assert.Contains(t, results, "FCFS")
	assert.Contains(t, results, "SSTF")
}

func TestPlanEach_FailsOnUnknownPolicy(t *testing.T) {
	results, err := PlanEach([]string{"FCFS", "BOGUS"}, 0, []int{1})
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.Nil(t, results)
}
