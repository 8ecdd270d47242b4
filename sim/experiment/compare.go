package experiment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim"
	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/theory"
)

// Grade rates how closely a simulated point matches the closed form.
type Grade string

const (
	GradeExcellent  Grade = "EXCELLENT"  // mean relative error < 2%
	GradeVeryGood   Grade = "VERY GOOD"  // < 5%
	GradeGood       Grade = "GOOD"       // < 10%
	GradeAcceptable Grade = "ACCEPTABLE" // anything else
)

// GradeFor maps a mean relative error (a fraction, not a percentage) to a Grade.
func GradeFor(meanError float64) Grade {
	switch {
	case meanError < 0.02:
		return GradeExcellent
	case meanError < 0.05:
		return GradeVeryGood
	case meanError < 0.10:
		return GradeGood
	default:
		return GradeAcceptable
	}
}

// TheoryComparison pairs simulated M/M/1 metrics with the closed form at one
// λ: response time, wait time and utilization (against ρ). All theoretical
// values, errors and MeanError are NaN and Grade is empty when Defined is
// false.
type TheoryComparison struct {
	Lambda        float64
	Simulated     float64 // mean response time
	Theoretical   float64 // 1/(μ-λ)
	RelativeError float64 // |sim - theory| / theory

	SimulatedWait   float64
	TheoreticalWait float64 // ρ/(μ-λ)
	WaitError       float64

	SimulatedUtilization   float64
	TheoreticalUtilization float64 // ρ
	UtilizationError       float64

	MeanError float64 // mean of the three relative errors
	Grade     Grade
	Defined   bool
}

// CompareWithTheory joins a simulated series with a theoretical curve over
// the same λ axis.
func CompareWithTheory(r LoadSweepResult, curve *theory.Curve) ([]TheoryComparison, error) {
	if curve == nil {
		return nil, fmt.Errorf("%w: nil theoretical curve", sim.ErrConfiguration)
	}
	if err := sameAxis(r.Lambda, curve.Lambda); err != nil {
		return nil, err
	}
	out := make([]TheoryComparison, r.Len())
	for i, l := range r.Lambda {
		nan := math.NaN()
		c := TheoryComparison{
			Lambda:                 l,
			Simulated:              r.MeanResponseTime[i],
			Theoretical:            nan,
			RelativeError:          nan,
			SimulatedWait:          r.MeanWaitTime[i],
			TheoreticalWait:        nan,
			WaitError:              nan,
			SimulatedUtilization:   r.ServerUtilization[i],
			TheoreticalUtilization: nan,
			UtilizationError:       nan,
			MeanError:              nan,
		}
		if p, err := curve.At(i); err == nil {
			c.Defined = true
			c.Theoretical = p.MeanResponseTime
			c.RelativeError = relativeError(c.Simulated, p.MeanResponseTime)
			c.TheoreticalWait = p.MeanWaitTime
			c.WaitError = relativeError(c.SimulatedWait, p.MeanWaitTime)
			c.TheoreticalUtilization = p.Rho
			c.UtilizationError = relativeError(c.SimulatedUtilization, p.Rho)
			c.MeanError = (c.RelativeError + c.WaitError + c.UtilizationError) / 3
			c.Grade = GradeFor(c.MeanError)
		}
		out[i] = c
	}
	return out, nil
}

// relativeError is |got - want| / want, or 0 when want is 0.
func relativeError(got, want float64) float64 {
	if want == 0 {
		return 0
	}
	return math.Abs(got-want) / math.Abs(want)
}

// ResponseRatio divides r's mean response time by ref's, point by point.
func ResponseRatio(r, ref LoadSweepResult) ([]float64, error) {
	if err := sameAxis(r.Lambda, ref.Lambda); err != nil {
		return nil, err
	}
	out := make([]float64, r.Len())
	for i := range out {
		out[i] = r.MeanResponseTime[i] / ref.MeanResponseTime[i]
	}
	return out, nil
}

// similarRatio is the mean response-time ratio below which a general
// variant counts as performing like M/M/1.
const similarRatio = 1.05

// SweepSummary condenses a sweep into headline numbers.
type SweepSummary struct {
	MeanRatio       map[sim.Variant]float64 // mean TR ratio to M/M/1 over the axis; G/M/1 and M/G/1 only
	MaxResponseTime map[sim.Variant]float64 // largest averaged TR per variant
	Similar         bool                    // both mean ratios below 1.05
	MostDegraded    sim.Variant             // general variant with the larger mean ratio
}

// Summary computes the mean response-time ratios to M/M/1 and the peak
// response time of every variant.
func (s *SweepResult) Summary() (SweepSummary, error) {
	mm1, err := s.ByVariant(sim.MM1)
	if err != nil {
		return SweepSummary{}, err
	}
	if mm1.Len() == 0 {
		return SweepSummary{}, fmt.Errorf("%w: sweep has no load points", sim.ErrConfiguration)
	}
	sum := SweepSummary{
		MeanRatio:       make(map[sim.Variant]float64, 2),
		MaxResponseTime: make(map[sim.Variant]float64, 3),
	}
	for _, v := range sim.Variants() {
		r, err := s.ByVariant(v)
		if err != nil {
			return SweepSummary{}, err
		}
		sum.MaxResponseTime[v] = floats.Max(r.MeanResponseTime)
		if v == sim.MM1 {
			continue
		}
		ratio, err := ResponseRatio(r, mm1)
		if err != nil {
			return SweepSummary{}, err
		}
		sum.MeanRatio[v] = stat.Mean(ratio, nil)
	}
	gm1, mg1 := sum.MeanRatio[sim.GM1], sum.MeanRatio[sim.MG1]
	sum.Similar = gm1 < similarRatio && mg1 < similarRatio
	sum.MostDegraded = sim.GM1
	if gm1 < mg1 {
		sum.MostDegraded = sim.MG1
	}
	return sum, nil
}

func sameAxis(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: λ axes differ in length (%d vs %d)", sim.ErrConfiguration, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%w: λ axes differ at index %d (%g vs %g)", sim.ErrConfiguration, i, a[i], b[i])
		}
	}
	return nil
}
