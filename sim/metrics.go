// Reduces a CustomerTimeline to the per-trial aggregates consumed by the
// experiment harness.

package sim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrialResult aggregates one simulated trial. Computed once, never mutated.
type TrialResult struct {
	Customers              int     // N
	MeanWaitTime           float64 // mean time queued before service
	MeanResponseTime       float64 // mean time in system (wait + service)
	MaxWaitTime            float64 // longest wait observed
	ServerUtilization      float64 // sum(service) / Departure[N-1]
	TheoreticalUtilization float64 // configured ρ = λ/μ, for reference
	Horizon                float64 // t=0 to the last departure
}

// Summarize reduces the timeline to a TrialResult. rho is carried through
// unchanged as the theoretical utilization.
func (t *CustomerTimeline) Summarize(rho float64) TrialResult {
	return TrialResult{
		Customers:              t.Len(),
		MeanWaitTime:           stat.Mean(t.Wait, nil),
		MeanResponseTime:       stat.Mean(t.Response, nil),
		MaxWaitTime:            floats.Max(t.Wait),
		ServerUtilization:      t.Utilization(),
		TheoreticalUtilization: rho,
		Horizon:                t.Horizon(),
	}
}
