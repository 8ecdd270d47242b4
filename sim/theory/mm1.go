// Package theory computes closed-form stationary metrics for the M/M/1 queue.
// It is pure: no randomness and no side effects. Results are joined with
// simulated sweeps only when reporting.
package theory

import (
	"errors"
	"fmt"
	"math"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim"
)

// ErrUndefinedPoint is returned for load points with λ >= μ, where the
// queue has no stationary distribution.
var ErrUndefinedPoint = errors.New("theoretical metrics undefined for λ >= μ")

// Point holds the stationary metrics at one arrival rate.
type Point struct {
	Lambda           float64
	Rho              float64 // λ/μ
	MeanResponseTime float64 // E[T] = 1/(μ-λ)
	MeanWaitTime     float64 // E[W] = ρ/(μ-λ)
	MeanInSystem     float64 // L = ρ/(1-ρ)
	MeanInQueue      float64 // Lq = ρ²/(1-ρ)
}

// Curve is the M/M/1 model evaluated over a λ axis. All slices are
// index-aligned with Lambda. Undefined points (λ >= μ) carry Defined=false
// and NaN metrics; Rho is always filled in.
type Curve struct {
	ServiceRate      float64
	Lambda           []float64
	Rho              []float64
	MeanResponseTime []float64
	MeanWaitTime     []float64
	MeanInSystem     []float64
	MeanInQueue      []float64
	Defined          []bool
}

// MM1 evaluates the M/M/1 formulas for every λ in lambda with service rate mu.
// The input slice is copied.
func MM1(lambda []float64, mu float64) (*Curve, error) {
	if math.IsNaN(mu) || math.IsInf(mu, 0) || mu <= 0 {
		return nil, fmt.Errorf("%w: service rate must be a finite positive number, got %f", sim.ErrConfiguration, mu)
	}
	n := len(lambda)
	c := &Curve{
		ServiceRate:      mu,
		Lambda:           append([]float64(nil), lambda...),
		Rho:              make([]float64, n),
		MeanResponseTime: make([]float64, n),
		MeanWaitTime:     make([]float64, n),
		MeanInSystem:     make([]float64, n),
		MeanInQueue:      make([]float64, n),
		Defined:          make([]bool, n),
	}
	for i, l := range lambda {
		if math.IsNaN(l) || math.IsInf(l, 0) || l <= 0 {
			return nil, fmt.Errorf("%w: arrival rate %d must be a finite positive number, got %f", sim.ErrConfiguration, i, l)
		}
		rho := l / mu
		c.Rho[i] = rho
		if l >= mu {
			c.MeanResponseTime[i] = math.NaN()
			c.MeanWaitTime[i] = math.NaN()
			c.MeanInSystem[i] = math.NaN()
			c.MeanInQueue[i] = math.NaN()
			continue
		}
		c.Defined[i] = true
		c.MeanResponseTime[i] = 1 / (mu - l)
		c.MeanWaitTime[i] = rho / (mu - l)
		c.MeanInSystem[i] = rho / (1 - rho)
		c.MeanInQueue[i] = rho * rho / (1 - rho)
	}
	return c, nil
}

// Len returns the number of points on the curve.
func (c *Curve) Len() int {
	return len(c.Lambda)
}

// DefinedCount returns how many points have λ < μ.
func (c *Curve) DefinedCount() int {
	n := 0
	for _, d := range c.Defined {
		if d {
			n++
		}
	}
	return n
}

// At returns point i, or ErrUndefinedPoint when λ[i] >= μ.
func (c *Curve) At(i int) (Point, error) {
	if i < 0 || i >= c.Len() {
		return Point{}, fmt.Errorf("%w: point index %d out of range [0, %d)", sim.ErrConfiguration, i, c.Len())
	}
	if !c.Defined[i] {
		return Point{}, fmt.Errorf("point %d (λ=%g, μ=%g): %w", i, c.Lambda[i], c.ServiceRate, ErrUndefinedPoint)
	}
	return Point{
		Lambda:           c.Lambda[i],
		Rho:              c.Rho[i],
		MeanResponseTime: c.MeanResponseTime[i],
		MeanWaitTime:     c.MeanWaitTime[i],
		MeanInSystem:     c.MeanInSystem[i],
		MeanInQueue:      c.MeanInQueue[i],
	}, nil
}
