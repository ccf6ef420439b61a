package variants

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// normalWidth is the half-width of the default domain in standard deviations.
const normalWidth = 4.0

// Normal is the Gaussian family parametrised by mean and standard deviation.
type Normal struct {
	continuous
}

// NewNormal creates the Normal variant.
func NewNormal(points int) Normal {
	return Normal{continuous: newContinuous(points)}
}

func (Normal) Name() string    { return "Normal" }
func (Normal) Kind() dist.Kind { return dist.KindDensity }

func (Normal) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("mean", "Mean (μ)", "Mean of the normal distribution"),
		config.Spec("std", "Standard Deviation (σ)", "Standard deviation of the normal distribution"),
	}
}

func (Normal) build(p dist.Params, src rand.Source) (distuv.Normal, error) {
	mean, err := p.Get("mean")
	if err != nil {
		return distuv.Normal{}, err
	}
	std, err := positive(p, "std")
	if err != nil {
		return distuv.Normal{}, err
	}
	return distuv.Normal{Mu: mean, Sigma: std, Src: src}, nil
}

func (n Normal) Validate(p dist.Params) error {
	_, err := n.build(p, nil)
	return err
}

func (n Normal) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := n.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		domain = n.span(d.Mu-normalWidth*d.Sigma, d.Mu+normalWidth*d.Sigma)
	}
	return evaluate(dist.KindDensity, domain, d), nil
}

func (n Normal) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := n.build(p, nil)
	if err != nil {
		return nil, err
	}
	return closedForm(d.Mu, d.Sigma*d.Sigma, 0, 0), nil
}

func (n Normal) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := n.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (n Normal) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	d, err := n.build(p, nil)
	if err != nil {
		return nil, err
	}
	return quantileOf(d), nil
}

func (Normal) ComparisonParams() dist.Params {
	return dist.Params{"mean": 0, "std": 1}
}

func (Normal) Info() string {
	return `The normal distribution is symmetric and bell-shaped, fully described by its mean and standard deviation. About 68% of the mass lies within one standard deviation of the mean and 95% within two.

**Parameter Effects:**
- Mean (μ): shifts the whole curve left or right without changing its shape.
- Standard Deviation (σ): a larger value spreads the curve out and lowers the peak; a smaller value makes it taller and narrower.`
}

// StandardNormal is the parameter-free normal with mean 0 and variance 1.
type StandardNormal struct {
	normal Normal
}

// NewStandardNormal creates the Standard Normal variant.
func NewStandardNormal(points int) StandardNormal {
	return StandardNormal{normal: NewNormal(points)}
}

var unitParams = dist.Params{"mean": 0, "std": 1}

func (StandardNormal) Name() string                 { return "Standard Normal" }
func (StandardNormal) Kind() dist.Kind              { return dist.KindDensity }
func (StandardNormal) Parameters() []dist.ParamSpec { return []dist.ParamSpec{} }
func (StandardNormal) Validate(dist.Params) error   { return nil }

func (s StandardNormal) Curve(_ dist.Params, domain []float64) (*dist.Curve, error) {
	return s.normal.Curve(unitParams, domain)
}

func (s StandardNormal) Statistics(dist.Params) (dist.Statistics, error) {
	return s.normal.Statistics(unitParams)
}

func (s StandardNormal) Sample(_ dist.Params, count int, src rand.Source) ([]float64, error) {
	return s.normal.Sample(unitParams, count, src)
}

func (s StandardNormal) Quantile(dist.Params) (ports.QuantileFunc, error) {
	return s.normal.Quantile(unitParams)
}

func (StandardNormal) ComparisonParams() dist.Params {
	return dist.Params{}
}

func (StandardNormal) Info() string {
	return `A normal distribution with mean 0 and standard deviation 1, the reference curve for z-scores.

**Parameter Effects:**
- None: the shape is fixed. Use it as a baseline when comparing other distributions.`
}
