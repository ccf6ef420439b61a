package variants

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"distviz/domain/core"
	"distviz/domain/dist"
	"distviz/ports"
)

func defaults(v ports.Variant) dist.Params {
	return dist.Defaults(v.Parameters())
}

// TestCurve_Deterministic verifies identical inputs produce bit-identical curves
func TestCurve_Deterministic(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			first, err := v.Curve(defaults(v), nil)
			require.NoError(t, err)
			second, err := v.Curve(defaults(v), nil)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

// TestCurve_LengthsMatch verifies domain, values and cumulative share a length
func TestCurve_LengthsMatch(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			c, err := v.Curve(defaults(v), nil)
			require.NoError(t, err)
			require.NotEmpty(t, c.X)
			assert.Len(t, c.Y, len(c.X))
			if c.CDF != nil {
				assert.Len(t, c.CDF, len(c.X))
			}
			assert.Equal(t, v.Kind(), c.Kind)
		})
	}
}

// TestCurve_ContinuousCDFMonotone verifies continuous cumulative curves are
// non-decreasing and bounded in [0, 1]
func TestCurve_ContinuousCDFMonotone(t *testing.T) {
	for _, v := range Default().Variants() {
		if v.Kind() != dist.KindDensity {
			continue
		}
		t.Run(v.Name(), func(t *testing.T) {
			c, err := v.Curve(defaults(v), nil)
			require.NoError(t, err)
			assert.Len(t, c.X, DefaultPoints)
			for i, f := range c.CDF {
				assert.GreaterOrEqual(t, f, 0.0)
				assert.LessOrEqual(t, f, 1.0)
				if i > 0 {
					assert.GreaterOrEqual(t, f, c.CDF[i-1]-1e-12, "cdf decreased at x=%g", c.X[i])
				}
			}
			for _, y := range c.Y {
				assert.False(t, math.IsNaN(y) || math.IsInf(y, 0))
				assert.GreaterOrEqual(t, y, 0.0)
			}
		})
	}
}

// TestCurve_DiscreteMassSums verifies mass over the default support lies in (0, 1]
func TestCurve_DiscreteMassSums(t *testing.T) {
	for _, v := range Default().Variants() {
		if v.Kind() != dist.KindMass {
			continue
		}
		t.Run(v.Name(), func(t *testing.T) {
			c, err := v.Curve(defaults(v), nil)
			require.NoError(t, err)
			total := 0.0
			for i, x := range c.X {
				assert.Equal(t, math.Trunc(x), x, "support must be integral")
				if i > 0 {
					assert.Greater(t, x, c.X[i-1])
				}
				total += c.Y[i]
			}
			assert.Greater(t, total, 0.0)
			assert.LessOrEqual(t, total, 1.0+1e-9)
		})
	}
}

// TestCurve_DefaultDomainCoverage verifies the default domain holds the
// central 99% of the mass
func TestCurve_DefaultDomainCoverage(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			p := defaults(v)
			c, err := v.Curve(p, nil)
			require.NoError(t, err)
			lo, hi := c.X[0], c.X[len(c.X)-1]

			q, err := v.Quantile(p)
			if err != nil {
				require.ErrorIs(t, err, core.ErrUnsupported)
				assert.GreaterOrEqual(t, c.CDF[len(c.CDF)-1], 0.995)
				return
			}
			qlo, err := q(0.005)
			require.NoError(t, err)
			qhi, err := q(0.995)
			require.NoError(t, err)
			assert.LessOrEqual(t, lo, qlo)
			assert.GreaterOrEqual(t, hi, qhi)
		})
	}
}

// TestCurve_ComparisonAlignment verifies every variant reuses a supplied
// domain verbatim, whatever kind produced it
func TestCurve_ComparisonAlignment(t *testing.T) {
	reg := Default()
	for _, primary := range reg.Variants() {
		base, err := primary.Curve(defaults(primary), nil)
		require.NoError(t, err)
		for _, other := range reg.Variants() {
			t.Run(primary.Name()+"/"+other.Name(), func(t *testing.T) {
				c, err := other.Curve(other.ComparisonParams(), base.X)
				require.NoError(t, err)
				assert.Equal(t, base.X, c.X)
				assert.Len(t, c.Y, len(base.X))
				assert.Len(t, c.CDF, len(base.X))
			})
		}
	}
}

func TestCurve_SuppliedDomainIsCopied(t *testing.T) {
	domain := []float64{-1, 0, 1}
	c, err := NewNormal(DefaultPoints).Curve(dist.Params{"mean": 0, "std": 1}, domain)
	require.NoError(t, err)
	c.X[0] = 99
	assert.Equal(t, -1.0, domain[0])
}

func TestCurve_DiscreteOnContinuousDomain(t *testing.T) {
	c, err := NewBinomial().Curve(dist.Params{"n": 4, "p": 0.5}, []float64{-1, 0, 0.5, 2, 4, 7})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.0625, 0, 0.375, 0.0625, 0}, c.Y, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0.0625, 0.0625, 0.6875, 1, 1}, c.CDF, 1e-12)
}

func TestStatistics_CanonicalSet(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			stats, err := v.Statistics(defaults(v))
			require.NoError(t, err)
			require.Len(t, stats, len(dist.CanonicalStatistics))
			for i, name := range dist.CanonicalStatistics {
				assert.Equal(t, name, stats[i].Name)
				if stats[i].Defined() {
					assert.False(t, math.IsNaN(stats[i].Value), "%s is NaN without a sentinel", name)
				}
			}
		})
	}
}

func TestStatistics_NormalScenario(t *testing.T) {
	stats, err := NewNormal(DefaultPoints).Statistics(dist.Params{"mean": 0, "std": 1})
	require.NoError(t, err)

	want := map[string]float64{
		dist.StatMean:     0,
		dist.StatVariance: 1,
		dist.StatStdDev:   1,
		dist.StatSkewness: 0,
		dist.StatKurtosis: 3,
	}
	for name, v := range want {
		st, ok := stats.Get(name)
		require.True(t, ok, name)
		assert.True(t, st.Defined())
		assert.Equal(t, v, st.Value, name)
	}
}

func TestStatistics_TDistributionSentinels(t *testing.T) {
	stats, err := NewStudentsT(DefaultPoints).Statistics(dist.Params{"df": 2})
	require.NoError(t, err)

	mean, _ := stats.Get(dist.StatMean)
	assert.True(t, mean.Defined())
	assert.Equal(t, 0.0, mean.Value)

	variance, _ := stats.Get(dist.StatVariance)
	assert.False(t, variance.Defined())
	assert.Equal(t, dist.SentinelInfinite, variance.Sentinel)

	skew, _ := stats.Get(dist.StatSkewness)
	assert.Equal(t, dist.SentinelUndefined, skew.Sentinel)

	stats, err = NewStudentsT(DefaultPoints).Statistics(dist.Params{"df": 1})
	require.NoError(t, err)
	mean, _ = stats.Get(dist.StatMean)
	assert.Equal(t, dist.SentinelUndefined, mean.Sentinel)

	stats, err = NewStudentsT(DefaultPoints).Statistics(dist.Params{"df": 10})
	require.NoError(t, err)
	kurt, _ := stats.Get(dist.StatKurtosis)
	assert.InDelta(t, 4.0, kurt.Value, 1e-12)
}

func TestStatistics_FDistributionSentinels(t *testing.T) {
	f := NewFDistribution(DefaultPoints)

	stats, err := f.Statistics(dist.Params{"dfn": 5, "dfd": 2})
	require.NoError(t, err)
	mean, _ := stats.Get(dist.StatMean)
	assert.Equal(t, dist.SentinelInfinite, mean.Sentinel)
	variance, _ := stats.Get(dist.StatVariance)
	assert.Equal(t, dist.SentinelUndefined, variance.Sentinel)

	stats, err = f.Statistics(dist.Params{"dfn": 5, "dfd": 10})
	require.NoError(t, err)
	mean, _ = stats.Get(dist.StatMean)
	assert.InDelta(t, 1.25, mean.Value, 1e-12)
	variance, _ = stats.Get(dist.StatVariance)
	assert.InDelta(t, 2*100*13/(5*64*6.0), variance.Value, 1e-12)
	kurt, _ := stats.Get(dist.StatKurtosis)
	assert.True(t, kurt.Defined())
}

func TestStatistics_DegenerateBernoulli(t *testing.T) {
	stats, err := NewBernoulli().Statistics(dist.Params{"p": 0})
	require.NoError(t, err)
	skew, _ := stats.Get(dist.StatSkewness)
	assert.Equal(t, dist.SentinelUndefined, skew.Sentinel)
	variance, _ := stats.Get(dist.StatVariance)
	assert.Equal(t, 0.0, variance.Value)
}

func TestBernoulli_Scenario(t *testing.T) {
	c, err := NewBernoulli().Curve(dist.Params{"p": 0.3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, c.X)
	assert.InDeltaSlice(t, []float64{0.7, 0.3}, c.Y, 1e-12)
	assert.InDeltaSlice(t, []float64{0.7, 1.0}, c.CDF, 1e-12)
	assert.Equal(t, dist.KindMass, c.Kind)
}

func TestBinomial_SampleScenario(t *testing.T) {
	src := rand.NewPCG(7, 11)
	samples, err := NewBinomial().Sample(dist.Params{"n": 10, "p": 0.5}, 1000, src)
	require.NoError(t, err)
	require.Len(t, samples, 1000)

	sum := 0.0
	for _, s := range samples {
		assert.Equal(t, math.Trunc(s), s)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 10.0)
		sum += s
	}
	assert.InDelta(t, 5.0, sum/1000, 0.3)
}

func TestBinomial_DegenerateProbability(t *testing.T) {
	b := NewBinomial()
	c, err := b.Curve(dist.Params{"n": 3, "p": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1}, c.Y)

	samples, err := b.Sample(dist.Params{"n": 3, "p": 0}, 5, rand.NewPCG(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, samples)
}

func TestUniform_InvalidBounds(t *testing.T) {
	u := NewUniform(DefaultPoints)
	p := dist.Params{"low": 5, "high": 2}

	err := u.Validate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	c, err := u.Curve(p, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Nil(t, c)
}

func TestValidate_MissingParameter(t *testing.T) {
	err := NewNormal(DefaultPoints).Validate(dist.Params{"mean": 0})
	assert.ErrorIs(t, err, core.ErrMissingParameter)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestValidate_PhysicalConstraints(t *testing.T) {
	cases := []struct {
		variant ports.Variant
		params  dist.Params
	}{
		{NewNormal(DefaultPoints), dist.Params{"mean": 0, "std": 0}},
		{NewChiSquare(DefaultPoints), dist.Params{"df": -1}},
		{NewBinomial(), dist.Params{"n": 2.5, "p": 0.5}},
		{NewBinomial(), dist.Params{"n": 10, "p": 1.5}},
		{NewBernoulli(), dist.Params{"p": -0.1}},
		{NewPoisson(), dist.Params{"mu": 0}},
		{NewGamma(DefaultPoints), dist.Params{"shape": 2, "scale": 0}},
		{NewBeta(DefaultPoints), dist.Params{"a": 0, "b": 1}},
		{NewFDistribution(DefaultPoints), dist.Params{"dfn": 1, "dfd": 0}},
		{NewLogNormal(DefaultPoints), dist.Params{"mean": math.NaN(), "std": 1}},
	}
	for _, tc := range cases {
		t.Run(tc.variant.Name(), func(t *testing.T) {
			assert.ErrorIs(t, tc.variant.Validate(tc.params), core.ErrInvalidParameter)
		})
	}
}

func TestQuantile_Capability(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			q, err := v.Quantile(defaults(v))
			if v.Kind() == dist.KindMass {
				assert.ErrorIs(t, err, core.ErrUnsupported)
				assert.Nil(t, q)
				return
			}
			require.NoError(t, err)
			median, err := q(0.5)
			require.NoError(t, err)
			c, err := v.Curve(defaults(v), []float64{median})
			require.NoError(t, err)
			assert.InDelta(t, 0.5, c.CDF[0], 1e-6)

			_, err = q(0)
			assert.ErrorIs(t, err, core.ErrInvalidProbability)
			_, err = q(1.2)
			assert.ErrorIs(t, err, core.ErrInvalidProbability)
		})
	}
}

func TestQuantile_NormalReference(t *testing.T) {
	q, err := NewStandardNormal(DefaultPoints).Quantile(nil)
	require.NoError(t, err)
	v, err := q(0.975)
	require.NoError(t, err)
	assert.InDelta(t, 1.959964, v, 1e-5)
}

func TestSample_CountAndSource(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			_, err := v.Sample(defaults(v), 0, rand.NewPCG(1, 2))
			assert.ErrorIs(t, err, core.ErrInvalidSampleSize)

			a, err := v.Sample(defaults(v), 50, rand.NewPCG(1, 2))
			require.NoError(t, err)
			b, err := v.Sample(defaults(v), 50, rand.NewPCG(1, 2))
			require.NoError(t, err)
			assert.Len(t, a, 50)
			assert.Equal(t, a, b)
		})
	}
}

func TestComparisonParams_AreValidAndFresh(t *testing.T) {
	for _, v := range Default().Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			p := v.ComparisonParams()
			require.NoError(t, v.Validate(p))
			p["extra"] = 1
			_, leaked := v.ComparisonParams()["extra"]
			assert.False(t, leaked)
		})
	}
}

func TestPoisson_SupportCoverage(t *testing.T) {
	ps := NewPoisson()
	for _, mu := range []float64{0.1, 4, 20, 2000} {
		c, err := ps.Curve(dist.Params{"mu": mu}, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(c.X), poissonMinSupport)
		assert.LessOrEqual(t, len(c.X), poissonMaxSupport)
		assert.GreaterOrEqual(t, c.CDF[len(c.CDF)-1], poissonCoverage)
		assert.Contains(t, c.X, math.Floor(mu), "mode inside support for mu=%g", mu)
		assert.GreaterOrEqual(t, floats.Sum(c.Y), 0.99, "mass covered for mu=%g", mu)
	}
	low, err := ps.Curve(dist.Params{"mu": 0.1}, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(low.X), 40)
	assert.Equal(t, 0.0, low.X[0])

	high, err := ps.Curve(dist.Params{"mu": 2000}, nil)
	require.NoError(t, err)
	assert.Greater(t, high.X[0], 1800.0)
}

func TestPoisson_UnrepresentableRate(t *testing.T) {
	_, err := NewPoisson().Curve(dist.Params{"mu": 1e17}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestBinomial_TrialCountIsBounded(t *testing.T) {
	b := NewBinomial()
	for _, n := range []float64{1e15, 1e20, maxIntegerSupport} {
		p := dist.Params{"n": n, "p": 0.5}
		assert.ErrorIs(t, b.Validate(p), core.ErrInvalidParameter, "n=%g", n)

		c, err := b.Curve(p, nil)
		assert.ErrorIs(t, err, core.ErrInvalidParameter, "n=%g", n)
		assert.Nil(t, c)

		_, err = b.Sample(p, 10, rand.NewPCG(1, 2))
		assert.ErrorIs(t, err, core.ErrInvalidParameter, "n=%g", n)
	}

	c, err := b.Curve(dist.Params{"n": maxIntegerSupport - 1, "p": 0.5}, nil)
	require.NoError(t, err)
	assert.Equal(t, maxIntegerSupport, c.Len())
}

func TestIntegerSupport(t *testing.T) {
	s, err := integerSupport(2, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4, 5}, s)

	_, err = integerSupport(3, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = integerSupport(0, math.Inf(1))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = integerSupport(0, 1e15)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}
