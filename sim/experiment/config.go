package experiment

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim"
)

// MaxCells bounds variants × load points × trials. Run keeps one TrialResult
// per cell in memory until averaging.
const MaxCells = 1 << 20

// axisTolerance absorbs floating error when deciding whether the stop value
// lands on the λ grid.
const axisTolerance = 1e-9

// SweepConfig is the single explicit configuration of a load sweep.
// Loaded from YAML via LoadSweepConfig(path) or built in code.
type SweepConfig struct {
	ServiceRate         float64 `yaml:"service_rate" json:"service_rate"`                 // μ, fixed across the sweep
	LambdaStart         float64 `yaml:"lambda_start" json:"lambda_start"`                 // first λ (> 0)
	LambdaStop          float64 `yaml:"lambda_stop" json:"lambda_stop"`                   // last λ, inclusive
	LambdaStep          float64 `yaml:"lambda_step" json:"lambda_step"`                   // λ increment (> 0)
	Customers           int     `yaml:"customers" json:"customers"`                       // N per trial
	Trials              int     `yaml:"trials" json:"trials"`                             // independent trials per (variant, λ)
	SeedBase            int64   `yaml:"seed_base" json:"seed_base"`                       // root of every cell's streams
	Workers             int     `yaml:"workers,omitempty" json:"workers,omitempty"`       // 0 = runtime.NumCPU()
	GeneralDistribution string  `yaml:"general_distribution" json:"general_distribution"` // "uniform" or "normal"
}

// DefaultSweepConfig returns μ = 1, λ = 0.1..0.9 step 0.1, one million
// customers, three trials and uniform general distributions.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		ServiceRate:         1.0,
		LambdaStart:         0.1,
		LambdaStop:          0.9,
		LambdaStep:          0.1,
		Customers:           1_000_000,
		Trials:              3,
		SeedBase:            0,
		GeneralDistribution: sim.DistUniform,
	}
}

// LoadSweepConfig reads a YAML sweep config. Fields absent from the file keep
// their DefaultSweepConfig values; unknown fields are rejected.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	cfg := DefaultSweepConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field. All failures wrap sim.ErrConfiguration.
func (c SweepConfig) Validate() error {
	if err := validateFinitePositive("service_rate", c.ServiceRate); err != nil {
		return err
	}
	if err := validateFinitePositive("lambda_start", c.LambdaStart); err != nil {
		return err
	}
	if err := validateFinitePositive("lambda_step", c.LambdaStep); err != nil {
		return err
	}
	if math.IsNaN(c.LambdaStop) || math.IsInf(c.LambdaStop, 0) || c.LambdaStop < c.LambdaStart {
		return configErrorf("lambda_stop must be finite and >= lambda_start (%g), got %g", c.LambdaStart, c.LambdaStop)
	}
	if steps := (c.LambdaStop - c.LambdaStart) / c.LambdaStep; steps >= sim.MaxLoadPoints-1 {
		return configErrorf("sweep spans %g steps; at most %d load points supported", steps, sim.MaxLoadPoints-1)
	}
	if c.Customers < 1 {
		return configErrorf("customers must be >= 1, got %d", c.Customers)
	}
	if c.Trials < 1 || uint64(c.Trials) > sim.MaxTrials {
		return configErrorf("trials must be in [1, %d], got %d", uint64(sim.MaxTrials), c.Trials)
	}
	if cells := float64(len(sim.Variants())) * float64(c.pointCount()) * float64(c.Trials); cells > MaxCells {
		return configErrorf("sweep needs %.0f cells (3 variants × load points × trials); at most %d supported", cells, MaxCells)
	}
	if c.Workers < 0 {
		return configErrorf("workers must be >= 0, got %d", c.Workers)
	}
	if _, err := sim.GeneralSpec(c.GeneralDistribution, 1); err != nil {
		return err
	}
	return nil
}

func (c SweepConfig) pointCount() int {
	return int(math.Floor((c.LambdaStop-c.LambdaStart)/c.LambdaStep+axisTolerance)) + 1
}

// LambdaAxis returns the ascending λ values start, start+step, ... up to and
// including stop. Each value is computed from its index, not accumulated, and
// rounded to 1e-9 so 0.1-style steps print and compare cleanly.
func (c SweepConfig) LambdaAxis() []float64 {
	n := c.pointCount()
	if n < 1 {
		return nil
	}
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = math.Round((c.LambdaStart+float64(i)*c.LambdaStep)*1e9) / 1e9
	}
	return axis
}

func (c SweepConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return configErrorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return configErrorf("%s must be positive, got %f", name, val)
	}
	return nil
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", sim.ErrConfiguration, fmt.Sprintf(format, args...))
}
