package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/seek-sim/sim"
)

var (
	policyName  string   // Policy for the plan command
	showDetails bool     // Include per-step movement descriptions
	policyNames []string // Policy set for the compare command
	compareJSON bool     // Print full results instead of the summary table
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan one policy over a request set",
		Example: `  seek-sim plan --policy SSTF --initial 50 --requests 10,60,55,90,5
  seek-sim plan --policy SCAN --max-track 199 --count 10 --seed 7 --details`,
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := newPlanner()
			if err != nil {
				return err
			}
			reqs, err := resolveRequests(cmd)
			if err != nil {
				return err
			}
			res, err := planner.Plan(policyName, initialPosition, reqs)
			if err != nil {
				return err
			}
			if showDetails {
				res.StepDetails = res.Describe(nil)
			}
			logrus.Infof("%s: total distance %d over %d requests", res.AlgorithmName, res.TotalDistance, len(reqs))
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&policyName, "policy", sim.PolicyFCFS, "Scheduling policy (see 'seek-sim compare --help' for names)")
	cmd.Flags().BoolVar(&showDetails, "details", false, "Include per-step movement descriptions")
	addRequestFlags(cmd.Flags())
	addPolicyFlags(cmd.Flags())
	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare several policies over the same request set",
		Long: fmt.Sprintf("Plans every policy in --policies over one request set and prints seek statistics, cheapest first.\nBuilt-in policies: %v",
			sim.DefaultRegistry().Names()),
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := newPlanner()
			if err != nil {
				return err
			}
			reqs, err := resolveRequests(cmd)
			if err != nil {
				return err
			}
			results, err := planner.PlanEach(policyNames, initialPosition, reqs)
			if err != nil {
				return err
			}
			if compareJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"algorithmResults": results})
			}
			sim.PrintComparison(cmd.OutOrStdout(), sim.SummarizeAll(results))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&policyNames, "policies", sim.ComparePolicies, "Comma-separated policies to compare")
	cmd.Flags().BoolVar(&compareJSON, "json", false, "Print full schedules as JSON instead of the summary table")
	addRequestFlags(cmd.Flags())
	addPolicyFlags(cmd.Flags())
	return cmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random request set",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := resolveRequests(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), reqs)
		},
	}
	addRequestFlags(cmd.Flags())
	return cmd
}
