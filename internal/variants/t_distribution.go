package variants

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// StudentsT is the standard t-distribution with df degrees of freedom.
type StudentsT struct {
	continuous
}

// NewStudentsT creates the t-distribution variant.
func NewStudentsT(points int) StudentsT {
	return StudentsT{continuous: newContinuous(points)}
}

func (StudentsT) Name() string    { return "t-distribution" }
func (StudentsT) Kind() dist.Kind { return dist.KindDensity }

func (StudentsT) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("df", "Degrees of Freedom (ν)", "Degrees of freedom parameter", config.WithDefault(10)),
	}
}

func (StudentsT) build(p dist.Params, src rand.Source) (distuv.StudentsT, error) {
	df, err := positive(p, "df")
	if err != nil {
		return distuv.StudentsT{}, err
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df, Src: src}, nil
}

func (t StudentsT) Validate(p dist.Params) error {
	_, err := t.build(p, nil)
	return err
}

func (t StudentsT) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := t.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		w := math.Max(5, d.Quantile(0.995))
		domain = t.span(-w, w)
	}
	return evaluate(dist.KindDensity, domain, d), nil
}

// Statistics reports the heavy-tail sentinels: the mean exists for ν > 1,
// the variance for ν > 2 (infinite on (1, 2]), the skewness for ν > 3 and
// the kurtosis for ν > 4 (infinite on (2, 4]).
func (t StudentsT) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := t.build(p, nil)
	if err != nil {
		return nil, err
	}
	nu := d.Nu

	mean := dist.Undefined(dist.StatMean)
	if nu > 1 {
		mean = dist.Value(dist.StatMean, 0)
	}

	variance, stddev := dist.Undefined(dist.StatVariance), dist.Undefined(dist.StatStdDev)
	switch {
	case nu > 2:
		v := nu / (nu - 2)
		variance = dist.Value(dist.StatVariance, v)
		stddev = dist.Value(dist.StatStdDev, math.Sqrt(v))
	case nu > 1:
		variance, stddev = dist.Infinite(dist.StatVariance), dist.Infinite(dist.StatStdDev)
	}

	skewness := dist.Undefined(dist.StatSkewness)
	if nu > 3 {
		skewness = dist.Value(dist.StatSkewness, 0)
	}

	kurtosis := dist.Undefined(dist.StatKurtosis)
	switch {
	case nu > 4:
		kurtosis = dist.Value(dist.StatKurtosis, 6/(nu-4)+3)
	case nu > 2:
		kurtosis = dist.Infinite(dist.StatKurtosis)
	}

	return moments(mean, variance, stddev, skewness, kurtosis), nil
}

func (t StudentsT) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := t.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (t StudentsT) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	d, err := t.build(p, nil)
	if err != nil {
		return nil, err
	}
	return quantileOf(d), nil
}

func (StudentsT) ComparisonParams() dist.Params {
	return dist.Params{"df": 5}
}

func (StudentsT) Info() string {
	return `Used for small-sample inference when the population variance is unknown. Bell-shaped like the normal but with heavier tails; converges to the normal as the degrees of freedom grow.

**Parameter Effects:**
- Degrees of Freedom (ν): larger values thin the tails; smaller values fatten them and raise the variance.`
}
