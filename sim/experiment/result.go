package experiment

import (
	"fmt"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim"
	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/theory"
)

// LoadSweepResult holds one variant's trial-averaged metrics across the λ
// axis. Every slice is index-aligned with Lambda.
type LoadSweepResult struct {
	Variant            sim.Variant `json:"-"`
	VariantName        string      `json:"variant"`
	Lambda             []float64   `json:"lambda"`
	MeanResponseTime   []float64   `json:"mean_response_time"`
	MeanWaitTime       []float64   `json:"mean_wait_time"`
	ServerUtilization  []float64   `json:"server_utilization"`
	ResponseTimeStdDev []float64   `json:"response_time_stddev"` // across trials; 0 when Trials == 1
	Unstable           []bool      `json:"unstable"`             // λ >= μ
}

func newLoadSweepResult(v sim.Variant, lambda []float64) LoadSweepResult {
	n := len(lambda)
	return LoadSweepResult{
		Variant:            v,
		VariantName:        v.String(),
		Lambda:             lambda,
		MeanResponseTime:   make([]float64, n),
		MeanWaitTime:       make([]float64, n),
		ServerUtilization:  make([]float64, n),
		ResponseTimeStdDev: make([]float64, n),
		Unstable:           make([]bool, n),
	}
}

// Len returns the number of load points.
func (r LoadSweepResult) Len() int {
	return len(r.Lambda)
}

// SweepResult is the outcome of one complete sweep. Results is ordered as
// sim.Variants().
type SweepResult struct {
	Config  SweepConfig       `json:"config"`
	Lambda  []float64         `json:"lambda"`
	Results []LoadSweepResult `json:"results"`
}

// ByVariant returns the result series for v.
func (s *SweepResult) ByVariant(v sim.Variant) (LoadSweepResult, error) {
	for _, r := range s.Results {
		if r.Variant == v {
			return r, nil
		}
	}
	return LoadSweepResult{}, fmt.Errorf("%w: sweep has no results for %s", sim.ErrConfiguration, v)
}

// Theory evaluates the M/M/1 model on the sweep's own λ axis.
func (s *SweepResult) Theory() (*theory.Curve, error) {
	return theory.MM1(s.Lambda, s.Config.ServiceRate)
}

// UnstableCount returns how many load points have λ >= μ.
func (s *SweepResult) UnstableCount() int {
	if len(s.Results) == 0 {
		return 0
	}
	n := 0
	for _, u := range s.Results[0].Unstable {
		if u {
			n++
		}
	}
	return n
}
