package sim

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/internal/testutil"
)

func newTestSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func sampleN(t *testing.T, spec DistSpec, n int) []float64 {
	t.Helper()
	s, err := NewSampler(spec, newTestSource(42))
	require.NoError(t, err)
	out, err := Generate(s, n)
	require.NoError(t, err)
	return out
}

func TestExponentialSampler_MeanMatchesRate(t *testing.T) {
	samples := sampleN(t, ExponentialSpec(4.0), 200000)
	testutil.AssertFloat64Equal(t, "exponential mean", 0.25, stat.Mean(samples, nil), 0.02)
	for i, v := range samples {
		if v < 0 {
			t.Fatalf("sample %d: got %v, want >= 0", i, v)
		}
	}
}

func TestUniformSampler_StaysInBounds(t *testing.T) {
	samples := sampleN(t, UniformSpec(0.5, 1.5), 100000)
	for i, v := range samples {
		if v < 0.5 || v >= 1.5 {
			t.Fatalf("sample %d: %v outside [0.5, 1.5)", i, v)
		}
	}
	testutil.AssertFloat64Equal(t, "uniform mean", 1.0, stat.Mean(samples, nil), 0.01)
}

func TestFoldedNormalSampler_NonNegativeAndBiasedUpward(t *testing.T) {
	// GIVEN a normal with a lot of mass below zero
	spec := FoldedNormalSpec(1.0, 1.0)
	s, err := NewSampler(spec, newTestSource(3))
	require.NoError(t, err)

	// THEN the analytic folded mean sits above the nominal mean
	assert.Greater(t, s.Mean(), 1.0)

	// AND samples are non-negative with a sample mean matching the analytic one
	samples, err := Generate(s, 200000)
	require.NoError(t, err)
	for i, v := range samples {
		if v < 0 {
			t.Fatalf("sample %d: got %v, want >= 0", i, v)
		}
	}
	testutil.AssertFloat64Equal(t, "folded normal mean", s.Mean(), stat.Mean(samples, nil), 0.02)
}

func TestFoldedNormal_GeneralParameterization_KeepsTinyBias(t *testing.T) {
	// std = mean/3 leaves ~0.13% of the mass below zero; the bias is real but small.
	spec, err := GeneralSpec(DistNormal, 2.0)
	require.NoError(t, err)
	s, err := NewSampler(spec, newTestSource(1))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Mean(), 2.0)
	assert.InDelta(t, 2.0, s.Mean(), 1e-3)
}

func TestGeneralSpec_Parameterization(t *testing.T) {
	tests := []struct {
		kind       string
		mean       float64
		wantType   string
		wantParams map[string]float64
	}{
		{DistUniform, 2.0, DistUniform, map[string]float64{"low": 1.0, "high": 3.0}},
		{DistUniform, 1.0 / 0.4, DistUniform, map[string]float64{"low": 1.25, "high": 3.75}},
		{DistNormal, 3.0, DistNormal, map[string]float64{"mean": 3.0, "std_dev": 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			spec, err := GeneralSpec(tt.kind, tt.mean)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, spec.Type)
			for k, want := range tt.wantParams {
				assert.InDelta(t, want, spec.Params[k], 1e-12, "param %s", k)
			}
		})
	}
}

func TestGeneralSpec_UnsupportedKind_ConfigurationError(t *testing.T) {
	_, err := GeneralSpec("gamma", 1.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestGeneralUniform_PreservesMean(t *testing.T) {
	// The mean-preserving span keeps the long-run rate of the replaced exponential.
	spec, err := GeneralSpec(DistUniform, 1.0/0.7)
	require.NoError(t, err)
	s, err := NewSampler(spec, newTestSource(9))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/0.7, s.Mean(), 1e-12)
}

func TestNewSampler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		spec   DistSpec
		target error
	}{
		{"unknown type", DistSpec{Type: "weibull"}, ErrConfiguration},
		{"missing rate", DistSpec{Type: DistExponential, Params: map[string]float64{}}, ErrConfiguration},
		{"missing high", DistSpec{Type: DistUniform, Params: map[string]float64{"low": 1}}, ErrConfiguration},
		{"missing std_dev", DistSpec{Type: DistNormal, Params: map[string]float64{"mean": 1}}, ErrConfiguration},
		{"zero rate", ExponentialSpec(0), ErrDomain},
		{"negative rate", ExponentialSpec(-1), ErrDomain},
		{"nan rate", ExponentialSpec(math.NaN()), ErrDomain},
		{"inf rate", ExponentialSpec(math.Inf(1)), ErrDomain},
		{"negative low", UniformSpec(-1, 1), ErrDomain},
		{"low equals high", UniformSpec(1, 1), ErrDomain},
		{"low above high", UniformSpec(2, 1), ErrDomain},
		{"zero mean", FoldedNormalSpec(0, 1), ErrDomain},
		{"zero std", FoldedNormalSpec(1, 0), ErrDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSampler(tt.spec, newTestSource(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "error %v should wrap %v", err, tt.target)
		})
	}
}

func TestNewSampler_NilSource_Rejected(t *testing.T) {
	_, err := NewSampler(ExponentialSpec(1), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestGenerate_ExactCount(t *testing.T) {
	s, err := NewSampler(ExponentialSpec(1), newTestSource(5))
	require.NoError(t, err)
	for _, n := range []int{1, 2, 17, 1000} {
		out, err := Generate(s, n)
		require.NoError(t, err)
		assert.Len(t, out, n)
	}
}

func TestGenerate_InvalidCount(t *testing.T) {
	s, err := NewSampler(ExponentialSpec(1), newTestSource(5))
	require.NoError(t, err)
	for _, n := range []int{0, -3} {
		_, err := Generate(s, n)
		assert.True(t, errors.Is(err, ErrConfiguration), "n=%d: got %v", n, err)
	}
}

func TestGenerate_SameSeed_SameSequence(t *testing.T) {
	a := sampleN(t, UniformSpec(0.1, 0.3), 500)
	b := sampleN(t, UniformSpec(0.1, 0.3), 500)
	testutil.AssertSlicesBitIdentical(t, "uniform samples", a, b)
}
