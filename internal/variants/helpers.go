package variants

import (
	"fmt"
	"math"

	"distviz/domain/core"
	"distviz/domain/dist"
	"distviz/ports"
)

// ============================================================================
// PARAMETER CHECKS
// ============================================================================

func positive(p dist.Params, name string) (float64, error) {
	v, err := p.Get(name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, core.NewParameterError(name, fmt.Sprintf("must be positive, got %g", v))
	}
	return v, nil
}

func probability(p dist.Params, name string) (float64, error) {
	v, err := p.Get(name)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, core.NewParameterError(name, fmt.Sprintf("must lie in [0, 1], got %g", v))
	}
	return v, nil
}

func positiveInteger(p dist.Params, name string) (float64, error) {
	v, err := positive(p, name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, core.NewParameterError(name, fmt.Sprintf("must be a whole number, got %g", v))
	}
	return v, nil
}

// ============================================================================
// SAMPLING
// ============================================================================

type randomizer interface {
	Rand() float64
}

func checkCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", core.ErrInvalidSampleSize, n)
	}
	return nil
}

func draw(n int, r randomizer) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Rand()
	}
	return out
}

// ============================================================================
// QUANTILES
// ============================================================================

type inverter interface {
	Quantile(p float64) float64
}

func quantileOf(q inverter) ports.QuantileFunc {
	return func(p float64) (float64, error) {
		if !(p > 0 && p < 1) {
			return 0, fmt.Errorf("%w: got %g", core.ErrInvalidProbability, p)
		}
		return q.Quantile(p), nil
	}
}

// ============================================================================
// STATISTICS
// ============================================================================

// moments assembles the canonical statistic set.
func moments(mean, variance, stddev, skewness, kurtosis dist.Statistic) dist.Statistics {
	return dist.Statistics{mean, variance, stddev, skewness, kurtosis}
}

// closedForm builds a fully defined statistic set from the mean, variance,
// skewness and excess kurtosis. Kurtosis is reported non-excess.
func closedForm(mean, variance, skewness, exKurtosis float64) dist.Statistics {
	return moments(
		dist.Value(dist.StatMean, mean),
		dist.Value(dist.StatVariance, variance),
		dist.Value(dist.StatStdDev, math.Sqrt(variance)),
		dist.Value(dist.StatSkewness, skewness),
		dist.Value(dist.StatKurtosis, exKurtosis+3),
	)
}
