package variants

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/core"
	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// Uniform spreads density evenly over [low, high].
type Uniform struct {
	continuous
}

// NewUniform creates the Uniform variant.
func NewUniform(points int) Uniform {
	return Uniform{continuous: newContinuous(points)}
}

func (Uniform) Name() string    { return "Uniform" }
func (Uniform) Kind() dist.Kind { return dist.KindDensity }

func (Uniform) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("low", "Lower bound (a)", "Lower bound of the uniform distribution"),
		config.Spec("high", "Upper bound (b)", "Upper bound of the uniform distribution"),
	}
}

func (Uniform) build(p dist.Params, src rand.Source) (distuv.Uniform, error) {
	low, err := p.Get("low")
	if err != nil {
		return distuv.Uniform{}, err
	}
	high, err := p.Get("high")
	if err != nil {
		return distuv.Uniform{}, err
	}
	if low >= high {
		return distuv.Uniform{}, core.NewParameterError("low",
			fmt.Sprintf("lower bound %g must be less than upper bound %g", low, high))
	}
	return distuv.Uniform{Min: low, Max: high, Src: src}, nil
}

func (u Uniform) Validate(p dist.Params) error {
	_, err := u.build(p, nil)
	return err
}

func (u Uniform) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := u.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		pad := math.Max(1, 0.1*(d.Max-d.Min))
		domain = u.span(d.Min-pad, d.Max+pad)
	}
	return evaluate(dist.KindDensity, domain, d), nil
}

func (u Uniform) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := u.build(p, nil)
	if err != nil {
		return nil, err
	}
	w := d.Max - d.Min
	return closedForm((d.Min+d.Max)/2, w*w/12, 0, -6.0/5), nil
}

func (u Uniform) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := u.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (u Uniform) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	d, err := u.build(p, nil)
	if err != nil {
		return nil, err
	}
	return quantileOf(d), nil
}

func (Uniform) ComparisonParams() dist.Params {
	return dist.Params{"low": -2, "high": 2}
}

func (Uniform) Info() string {
	return `Every value in [a, b] is equally likely, so the density is a flat plateau.

**Parameter Effects:**
- Lower bound (a): moves the start of the plateau; raising it raises the mean.
- Upper bound (b): moves the end of the plateau; raising it raises the mean and the variance.`
}
