package variants

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// FDistribution is the ratio of two scaled chi-square variables.
type FDistribution struct {
	continuous
}

// NewFDistribution creates the F-distribution variant.
func NewFDistribution(points int) FDistribution {
	return FDistribution{continuous: newContinuous(points)}
}

func (FDistribution) Name() string    { return "F-distribution" }
func (FDistribution) Kind() dist.Kind { return dist.KindDensity }

func (FDistribution) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("dfn", "dfn (numerator)", "Degrees of freedom for numerator"),
		config.Spec("dfd", "dfd (denominator)", "Degrees of freedom for denominator"),
	}
}

func (FDistribution) build(p dist.Params, src rand.Source) (distuv.F, error) {
	dfn, err := positive(p, "dfn")
	if err != nil {
		return distuv.F{}, err
	}
	dfd, err := positive(p, "dfd")
	if err != nil {
		return distuv.F{}, err
	}
	return distuv.F{D1: dfn, D2: dfd, Src: src}, nil
}

func (f FDistribution) Validate(p dist.Params) error {
	_, err := f.build(p, nil)
	return err
}

func (f FDistribution) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := f.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		domain = f.span(0, math.Max(5, d.Quantile(0.995)))
	}
	return evaluate(dist.KindDensity, domain, d), nil
}

// Statistics follows the existence conditions on the denominator degrees
// of freedom: mean needs d2 > 2, variance d2 > 4, skewness d2 > 6 and
// kurtosis d2 > 8.
func (f FDistribution) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := f.build(p, nil)
	if err != nil {
		return nil, err
	}
	d1, d2 := d.D1, d.D2

	mean := dist.Infinite(dist.StatMean)
	if d2 > 2 {
		mean = dist.Value(dist.StatMean, d2/(d2-2))
	}

	variance, stddev := dist.Undefined(dist.StatVariance), dist.Undefined(dist.StatStdDev)
	switch {
	case d2 > 4:
		v := 2 * d2 * d2 * (d1 + d2 - 2) / (d1 * (d2 - 2) * (d2 - 2) * (d2 - 4))
		variance = dist.Value(dist.StatVariance, v)
		stddev = dist.Value(dist.StatStdDev, math.Sqrt(v))
	case d2 > 2:
		variance, stddev = dist.Infinite(dist.StatVariance), dist.Infinite(dist.StatStdDev)
	}

	skewness := dist.Undefined(dist.StatSkewness)
	if d2 > 6 {
		s := (2*d1 + d2 - 2) * math.Sqrt(8*(d2-4)) / ((d2 - 6) * math.Sqrt(d1*(d1+d2-2)))
		skewness = dist.Value(dist.StatSkewness, s)
	}

	kurtosis := dist.Undefined(dist.StatKurtosis)
	if d2 > 8 {
		num := 12 * (d1*(5*d2-22)*(d1+d2-2) + (d2-4)*(d2-2)*(d2-2))
		den := d1 * (d2 - 6) * (d2 - 8) * (d1 + d2 - 2)
		kurtosis = dist.Value(dist.StatKurtosis, num/den+3)
	}

	return moments(mean, variance, stddev, skewness, kurtosis), nil
}

func (f FDistribution) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := f.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (f FDistribution) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	d, err := f.build(p, nil)
	if err != nil {
		return nil, err
	}
	return quantileOf(d), nil
}

func (FDistribution) ComparisonParams() dist.Params {
	return dist.Params{"dfn": 3, "dfd": 5}
}

func (FDistribution) Info() string {
	return `The ratio of two chi-square variables scaled by their degrees of freedom. Used in ANOVA and regression; right-skewed.

**Parameter Effects:**
- dfn (numerator): larger values make the distribution less skewed.
- dfd (denominator): larger values pull the mean toward 1 and shrink the variance.`
}
