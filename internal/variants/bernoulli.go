package variants

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/core"
	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// Bernoulli is a single trial with success probability p.
type Bernoulli struct{}

// NewBernoulli creates the Bernoulli variant.
func NewBernoulli() Bernoulli {
	return Bernoulli{}
}

func (Bernoulli) Name() string    { return "Bernoulli" }
func (Bernoulli) Kind() dist.Kind { return dist.KindMass }

func (Bernoulli) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("p", "Probability of success (p)", "Probability of success"),
	}
}

func (Bernoulli) build(p dist.Params, src rand.Source) (distuv.Bernoulli, error) {
	prob, err := probability(p, "p")
	if err != nil {
		return distuv.Bernoulli{}, err
	}
	return distuv.Bernoulli{P: prob, Src: src}, nil
}

func (b Bernoulli) Validate(p dist.Params) error {
	_, err := b.build(p, nil)
	return err
}

func (b Bernoulli) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := b.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		if domain, err = integerSupport(0, 1); err != nil {
			return nil, err
		}
	}
	return evaluate(dist.KindMass, domain, bernoulliMass{d}), nil
}

func (b Bernoulli) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := b.build(p, nil)
	if err != nil {
		return nil, err
	}
	return bernoulliTrials(1, d.P), nil
}

func (b Bernoulli) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := b.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (b Bernoulli) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	if err := b.Validate(p); err != nil {
		return nil, err
	}
	return nil, core.NewUnsupportedError(b.Name(), "quantile function")
}

func (Bernoulli) ComparisonParams() dist.Params {
	return dist.Params{"p": 0.5}
}

func (Bernoulli) Info() string {
	return `A single trial with two outcomes, the building block of the binomial.

**Parameter Effects:**
- Probability of success (p): moves mass from 0 to 1; the shape is right-skewed for p < 0.5 and left-skewed for p > 0.5.`
}

// bernoulliMass evaluates the two-point mass exactly rather than through
// the log-probability, so p and 1-p come back unrounded.
type bernoulliMass struct {
	d distuv.Bernoulli
}

func (m bernoulliMass) Prob(x float64) float64 {
	switch x {
	case 0:
		return 1 - m.d.P
	case 1:
		return m.d.P
	}
	return 0
}

func (m bernoulliMass) CDF(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x < 1:
		return 1 - m.d.P
	}
	return 1
}
