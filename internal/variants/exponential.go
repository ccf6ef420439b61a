package variants

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// exponentialWidth is the default domain length in scale units; it covers
// more than 99.9% of the mass.
const exponentialWidth = 7.0

// Exponential is the memoryless waiting-time distribution.
type Exponential struct {
	continuous
}

// NewExponential creates the Exponential variant.
func NewExponential(points int) Exponential {
	return Exponential{continuous: newContinuous(points)}
}

func (Exponential) Name() string    { return "Exponential" }
func (Exponential) Kind() dist.Kind { return dist.KindDensity }

func (Exponential) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("scale", "Scale (1/λ)", "Scale parameter (mean = 1/rate)",
			config.WithRange(0.1, 10.0), config.WithDefault(1.0)),
	}
}

func (Exponential) build(p dist.Params, src rand.Source) (distuv.Exponential, error) {
	scale, err := positive(p, "scale")
	if err != nil {
		return distuv.Exponential{}, err
	}
	return distuv.Exponential{Rate: 1 / scale, Src: src}, nil
}

func (e Exponential) Validate(p dist.Params) error {
	_, err := e.build(p, nil)
	return err
}

func (e Exponential) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := e.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		domain = e.span(0, exponentialWidth/d.Rate)
	}
	return evaluate(dist.KindDensity, domain, d), nil
}

func (e Exponential) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := e.build(p, nil)
	if err != nil {
		return nil, err
	}
	scale := 1 / d.Rate
	return closedForm(scale, scale*scale, 2, 6), nil
}

func (e Exponential) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := e.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (e Exponential) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	d, err := e.build(p, nil)
	if err != nil {
		return nil, err
	}
	return quantileOf(d), nil
}

func (Exponential) ComparisonParams() dist.Params {
	return dist.Params{"scale": 1.0}
}

func (Exponential) Info() string {
	return `Models the time between events of a Poisson process. Always positive and right-skewed, with a constant hazard rate (memoryless).

**Parameter Effects:**
- Scale (1/λ): raises the mean and the spread; the curve flattens and the tail lengthens.`
}
