// Package sim provides the single-server FIFO queue simulation kernel.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - distribution.go: duration samplers (exponential, uniform, folded normal)
//   - rng.go: per-cell isolated random streams derived from a seed base
//   - queue.go: the Lindley recurrence producing a CustomerTimeline
//   - simulator.go: QueueSimulator binding a SimulationConfig to the M/M/1,
//     G/M/1 and M/G/1 variants
//
// # Architecture
//
// The kernel is a strict one-way pipeline: samplers fill two duration
// sequences, RunLindley folds them into per-customer timings, and
// Summarize reduces the timeline to a TrialResult. Sub-packages build on it:
//   - sim/experiment/: load sweep harness repeating trials across λ values
//   - sim/theory/: closed-form M/M/1 stationary metrics used for validation
//
// No package-level random state is used. Every sampler draws from a
// rand.Source handed to it by the caller, usually one obtained from a
// PartitionedRNG.
package sim
