// Package sim provides the seek-scheduling core for seek-sim.
//
// # Reading Guide
//
// Start with these files:
//   - policy.go: the Policy contract, Visit, and the name-keyed Registry
//   - scheduler.go: built-in policies (FCFS, SSTF, SCAN, SCAN-ASC, LOOK, C-SCAN, C-LOOK)
//   - plan.go: Planner.Plan, position validation, step-distance accumulation
//
// # Architecture
//
// The core is pure: a Planner holds a read-only Registry and PolicyConfig and
// never mutates shared state, so one Planner may serve any number of goroutines.
// Supporting sub-packages:
//   - sim/trace: per-step movement records (no dependency on sim/)
//   - sim/workload: uniform random request generation
//
// # Key Interfaces
//
//   - Policy: order a request set given the head position
//   - PolicyFactory: build a Policy from PolicyConfig; registered by name
package sim
