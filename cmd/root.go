package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/seek-sim/sim"
	"github.com/inference-sim/seek-sim/sim/workload"
)

var (
	logLevel string // Log verbosity level

	// Request set flags shared by plan, compare and generate
	initialPosition int   // Head position before the first move
	requestList     []int // Explicit request positions, arrival order
	requestCount    int   // Number of requests to generate when --requests is absent
	requestMin      int   // Lowest generated position (inclusive)
	requestMax      int   // Highest generated position (inclusive)
	seed            int64 // Seed for request generation

	// Policy tuning flags
	direction string // Initial sweep direction for SCAN-family policies
	maxTrack  int    // Highest addressable track; 0 = unbounded
)

// NewRootCmd creates the root cobra command for the seek-sim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seek-sim",
		Short: "Disk head scheduling simulator",
		Long:  "seek-sim computes the service order and head movement of disk scheduling policies (FCFS, SSTF, SCAN, LOOK, C-SCAN, C-LOOK).",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(
		newPlanCmd(),
		newCompareCmd(),
		newGenerateCmd(),
		newServeCmd(),
	)
	return root
}

// Execute runs the CLI root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func addRequestFlags(fs *pflag.FlagSet) {
	fs.IntVar(&initialPosition, "initial", 0, "Initial head position")
	fs.IntSliceVar(&requestList, "requests", nil, "Comma-separated request positions in arrival order (generated when absent)")
	fs.IntVar(&requestCount, "count", workload.DefaultRequestSpec().Count, "Number of requests to generate")
	fs.IntVar(&requestMin, "min", workload.DefaultRequestSpec().Min, "Lowest generated request position")
	fs.IntVar(&requestMax, "max", workload.DefaultRequestSpec().Max, "Highest generated request position")
	fs.Int64Var(&seed, "seed", 42, "Seed for random request generation")
}

func addPolicyFlags(fs *pflag.FlagSet) {
	fs.StringVar(&direction, "direction", "", "Initial sweep direction for SCAN-family policies (up, down; empty = derive from requests)")
	fs.IntVar(&maxTrack, "max-track", 0, "Highest addressable track; SCAN and C-SCAN travel to it (0 = unbounded)")
}

// newPlanner builds a planner over the built-in policies from the policy flags.
func newPlanner() (*sim.Planner, error) {
	return sim.NewPlanner(sim.DefaultRegistry(), sim.PolicyConfig{
		Direction: sim.ParseDirection(direction),
		MaxTrack:  maxTrack,
	})
}

// resolveRequests returns --requests when given, otherwise a seeded random set.
func resolveRequests(cmd *cobra.Command) ([]int, error) {
	if cmd.Flags().Changed("requests") {
		return append([]int{}, requestList...), nil
	}
	reqs, err := workload.GenerateSeeded(seed, workload.RequestSpec{Count: requestCount, Min: requestMin, Max: requestMax})
	if err != nil {
		return nil, err
	}
	logrus.Infof("generated %d requests in [%d, %d] with seed %d: %v", len(reqs), requestMin, requestMax, seed, reqs)
	return reqs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
