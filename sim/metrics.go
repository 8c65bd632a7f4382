// Seek statistics for comparing policies over the same request set.

package sim

import (
	"fmt"
	"io"
	"sort"

	"github.com/inference-sim/seek-sim/sim/trace"
)

// Summary aggregates the seek statistics of one ScheduleResult
// for side-by-side reporting.
type Summary struct {
	Policy        string  `json:"policy"`
	Requests      int     `json:"requests"`
	TotalDistance int     `json:"total_distance"`
	MeanSeek      float64 `json:"mean_seek"`
	P50Seek       float64 `json:"p50_seek"`
	P90Seek       float64 `json:"p90_seek"`
	MaxSeek       int     `json:"max_seek"`
	Reversals     int     `json:"reversals"`  // changes of head direction
	Excursions    int     `json:"excursions"` // steps routed through a boundary or wrap
}

// Summarize computes seek statistics from a result. Safe for empty results.
func Summarize(r *ScheduleResult) Summary {
	sorted := sortedCopy(r.StepDistances)
	ts := trace.Summarize(r.Trace)
	return Summary{
		Policy:        r.AlgorithmName,
		Requests:      len(r.ProcessedOrder),
		TotalDistance: r.TotalDistance,
		MeanSeek:      CalculateMean(sorted),
		P50Seek:       CalculatePercentile(sorted, 50),
		P90Seek:       CalculatePercentile(sorted, 90),
		MaxSeek:       ts.MaxSeek,
		Reversals:     ts.Reversals,
		Excursions:    ts.Excursions,
	}
}

// SummarizeAll summarizes every result, ordered by total distance ascending
// then policy name, so the cheapest policy is listed first.
func SummarizeAll(results map[string]*ScheduleResult) []Summary {
	out := make([]Summary, 0, len(results))
	for _, r := range results {
		out = append(out, Summarize(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDistance != out[j].TotalDistance {
			return out[i].TotalDistance < out[j].TotalDistance
		}
		return out[i].Policy < out[j].Policy
	})
	return out
}

// PrintComparison writes a fixed-width comparison table.
func PrintComparison(w io.Writer, summaries []Summary) {
	fmt.Fprintln(w, "=== Seek Comparison ===")
	fmt.Fprintf(w, "%-10s %8s %10s %9s %9s %9s %8s %9s %10s\n",
		"Policy", "Requests", "Total", "Mean", "P50", "P90", "Max", "Reversals", "Excursions")
	for _, s := range summaries {
		fmt.Fprintf(w, "%-10s %8d %10d %9.2f %9.2f %9.2f %8d %9d %10d\n",
			s.Policy, s.Requests, s.TotalDistance, s.MeanSeek, s.P50Seek, s.P90Seek, s.MaxSeek, s.Reversals, s.Excursions)
	}
}
