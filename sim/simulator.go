package sim

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// GenerateWorkload draws the inter-arrival and service sequences of one cell.
// Inter-arrivals come from the StreamArrival stream and service times from
// StreamService, so the two sequences never share random draws.
func GenerateWorkload(cfg SimulationConfig, v Variant, general string, rng *PartitionedRNG) (interArrival, service []float64, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := rng.Key().Validate(); err != nil {
		return nil, nil, err
	}
	arrivalSpec, serviceSpec, err := v.Specs(general, cfg.ArrivalRate, cfg.ServiceRate)
	if err != nil {
		return nil, nil, err
	}
	arrivals, err := NewSampler(arrivalSpec, rng.ForStream(StreamArrival))
	if err != nil {
		return nil, nil, err
	}
	services, err := NewSampler(serviceSpec, rng.ForStream(StreamService))
	if err != nil {
		return nil, nil, err
	}
	if interArrival, err = Generate(arrivals, cfg.Customers); err != nil {
		return nil, nil, err
	}
	if service, err = Generate(services, cfg.Customers); err != nil {
		return nil, nil, err
	}
	return interArrival, service, nil
}

// RunTrial simulates one cell and keeps only its aggregate; the per-customer
// arrays are dropped once summarized.
func RunTrial(cfg SimulationConfig, v Variant, general string, rng *PartitionedRNG) (TrialResult, error) {
	interArrival, service, err := GenerateWorkload(cfg, v, general, rng)
	if err != nil {
		return TrialResult{}, err
	}
	timeline, err := RunLindley(interArrival, service)
	if err != nil {
		return TrialResult{}, err
	}
	return timeline.Summarize(cfg.Rho()), nil
}

// QueueSimulator runs single simulations of the three variants for one
// SimulationConfig. Every Simulate call re-derives its streams from the seed
// base, so repeated calls return identical timelines.
type QueueSimulator struct {
	config   SimulationConfig
	seedBase int64
}

// NewQueueSimulator validates cfg and fixes the seed base. When cfg.Seed is
// nil a seed is drawn once and logged so the run can be reproduced.
// An unstable configuration (ρ >= 1) is accepted with a warning.
func NewQueueSimulator(cfg SimulationConfig) (*QueueSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var seedBase int64
	if cfg.Seed != nil {
		seedBase = *cfg.Seed
	} else {
		seedBase = rand.Int64()
		logrus.Infof("No seed supplied; using seed base %d", seedBase)
	}
	if !cfg.Stable() {
		logrus.Warnf("ρ = %.2f >= 1: queue is unstable; results describe transient growth, not a steady state", cfg.Rho())
	}
	return &QueueSimulator{config: cfg, seedBase: seedBase}, nil
}

// Config returns the simulator's configuration.
func (s *QueueSimulator) Config() SimulationConfig {
	return s.config
}

// SeedBase returns the seed base all streams derive from.
func (s *QueueSimulator) SeedBase() int64 {
	return s.seedBase
}

// SimulateMM1 runs the exponential/exponential queue.
func (s *QueueSimulator) SimulateMM1() (*CustomerTimeline, TrialResult, error) {
	return s.Simulate(MM1, "")
}

// SimulateGM1 runs the queue with general inter-arrivals ("uniform" or "normal").
func (s *QueueSimulator) SimulateGM1(general string) (*CustomerTimeline, TrialResult, error) {
	return s.Simulate(GM1, general)
}

// SimulateMG1 runs the queue with general service times ("uniform" or "normal").
func (s *QueueSimulator) SimulateMG1(general string) (*CustomerTimeline, TrialResult, error) {
	return s.Simulate(MG1, general)
}

// Simulate runs variant v and returns both the full timeline and its summary.
func (s *QueueSimulator) Simulate(v Variant, general string) (*CustomerTimeline, TrialResult, error) {
	logrus.Debugf("Simulating %s queue (λ=%.3f, μ=%.3f, N=%d, general=%q)",
		v, s.config.ArrivalRate, s.config.ServiceRate, s.config.Customers, general)

	rng := NewPartitionedRNG(s.seedBase, CellKey{Variant: v})
	interArrival, service, err := GenerateWorkload(s.config, v, general, rng)
	if err != nil {
		return nil, TrialResult{}, err
	}
	timeline, err := RunLindley(interArrival, service)
	if err != nil {
		return nil, TrialResult{}, err
	}
	return timeline, timeline.Summarize(s.config.Rho()), nil
}
