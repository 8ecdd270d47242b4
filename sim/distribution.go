package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution identifiers accepted in DistSpec.Type.
const (
	DistExponential = "exponential" // param: rate
	DistUniform     = "uniform"     // params: low, high
	DistNormal      = "normal"      // params: mean, std_dev (folded at zero)
)

// DistSpec names a duration distribution and its parameters.
type DistSpec struct {
	Type   string             `yaml:"type" json:"type"`
	Params map[string]float64 `yaml:"params" json:"params"`
}

// ExponentialSpec returns an exponential distribution with mean 1/rate.
func ExponentialSpec(rate float64) DistSpec {
	return DistSpec{Type: DistExponential, Params: map[string]float64{"rate": rate}}
}

// UniformSpec returns a uniform distribution over [low, high).
func UniformSpec(low, high float64) DistSpec {
	return DistSpec{Type: DistUniform, Params: map[string]float64{"low": low, "high": high}}
}

// FoldedNormalSpec returns |N(mean, stdDev²)|.
func FoldedNormalSpec(mean, stdDev float64) DistSpec {
	return DistSpec{Type: DistNormal, Params: map[string]float64{"mean": mean, "std_dev": stdDev}}
}

// GeneralSpec returns the "general" distribution replacing an exponential of
// the given mean. Uniform spans [0.5·mean, 1.5·mean] so the mean is kept;
// the folded normal uses std = mean/3 and is biased slightly above mean by
// the fold. Both mappings are fixed modeling choices.
func GeneralSpec(kind string, mean float64) (DistSpec, error) {
	switch kind {
	case DistUniform:
		return UniformSpec(0.5*mean, 1.5*mean), nil
	case DistNormal:
		return FoldedNormalSpec(mean, mean/3), nil
	default:
		return DistSpec{}, configErrorf("unsupported general distribution %q; valid: uniform, normal", kind)
	}
}

// Sampler draws i.i.d. non-negative durations.
type Sampler interface {
	// Rand returns the next sample.
	Rand() float64
	// Mean returns the exact mean of the distribution being sampled.
	Mean() float64
}

// FoldedNormal samples |X| with X ~ N(mu, sigma²).
type FoldedNormal struct {
	normal distuv.Normal
}

func (f FoldedNormal) Rand() float64 {
	return math.Abs(f.normal.Rand())
}

// Mean is the folded-normal mean, which exceeds mu whenever the normal has
// mass below zero.
func (f FoldedNormal) Mean() float64 {
	mu, sigma := f.normal.Mu, f.normal.Sigma
	return sigma*math.Sqrt(2/math.Pi)*math.Exp(-mu*mu/(2*sigma*sigma)) +
		mu*(1-2*distuv.UnitNormal.CDF(-mu/sigma))
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return configErrorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return domainErrorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return domainErrorf("%s must be positive, got %f", name, val)
	}
	return nil
}

// NewSampler creates a Sampler from a DistSpec drawing from src.
// src must be non-nil: samplers never fall back to a global stream.
func NewSampler(spec DistSpec, src rand.Source) (Sampler, error) {
	if src == nil {
		return nil, configErrorf("sampler %q requires an explicit random source", spec.Type)
	}
	switch spec.Type {
	case DistExponential:
		if err := requireParam(spec.Params, "rate"); err != nil {
			return nil, err
		}
		rate := spec.Params["rate"]
		if err := validateFinitePositive("exponential rate", rate); err != nil {
			return nil, err
		}
		return distuv.Exponential{Rate: rate, Src: src}, nil

	case DistUniform:
		if err := requireParam(spec.Params, "low", "high"); err != nil {
			return nil, err
		}
		low, high := spec.Params["low"], spec.Params["high"]
		if err := validateFinitePositive("uniform high", high); err != nil {
			return nil, err
		}
		if math.IsNaN(low) || low < 0 || low >= high {
			return nil, domainErrorf("uniform bounds must satisfy 0 <= low < high, got [%f, %f)", low, high)
		}
		return distuv.Uniform{Min: low, Max: high, Src: src}, nil

	case DistNormal:
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		mean, std := spec.Params["mean"], spec.Params["std_dev"]
		if err := validateFinitePositive("normal mean", mean); err != nil {
			return nil, err
		}
		if err := validateFinitePositive("normal std_dev", std); err != nil {
			return nil, err
		}
		return FoldedNormal{normal: distuv.Normal{Mu: mean, Sigma: std, Src: src}}, nil

	default:
		return nil, configErrorf("unknown distribution type %q", spec.Type)
	}
}

// Generate draws exactly n samples from s. The returned slice is owned by
// the caller.
func Generate(s Sampler, n int) ([]float64, error) {
	if n < 1 {
		return nil, configErrorf("sample count must be >= 1, got %d", n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Rand()
	}
	return out, nil
}
