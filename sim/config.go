package sim

import "math"

// SimulationConfig parameterizes a single queue simulation.
type SimulationConfig struct {
	ArrivalRate float64 // λ, customers per unit time (must be > 0)
	ServiceRate float64 // μ, completions per unit time (must be > 0)
	Customers   int     // N, customers per trial (must be >= 1)
	Seed        *int64  // optional seed base; nil draws a fresh one
}

// Rho returns the target utilization λ/μ.
func (c SimulationConfig) Rho() float64 {
	return c.ArrivalRate / c.ServiceRate
}

// Stable reports whether ρ < 1. Unstable configs still simulate; their
// results describe transient growth rather than a steady state.
func (c SimulationConfig) Stable() bool {
	return c.Rho() < 1
}

// Validate checks rates and customer count.
func (c SimulationConfig) Validate() error {
	if err := validateRate("arrival rate", c.ArrivalRate); err != nil {
		return err
	}
	if err := validateRate("service rate", c.ServiceRate); err != nil {
		return err
	}
	if c.Customers < 1 {
		return configErrorf("customer count must be >= 1, got %d", c.Customers)
	}
	return nil
}

func validateRate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return configErrorf("%s must be a finite positive number, got %f", name, v)
	}
	return nil
}
