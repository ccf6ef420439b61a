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

// Binomial counts successes in n independent trials with success chance p.
type Binomial struct{}

// NewBinomial creates the Binomial variant.
func NewBinomial() Binomial {
	return Binomial{}
}

func (Binomial) Name() string    { return "Binomial" }
func (Binomial) Kind() dist.Kind { return dist.KindMass }

func (Binomial) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("n", "Number of trials (n)", "Number of independent trials"),
		config.Spec("p", "Probability of success (p)", "Probability of success in each trial"),
	}
}

func (Binomial) params(p dist.Params) (n, prob float64, err error) {
	if n, err = positiveInteger(p, "n"); err != nil {
		return 0, 0, err
	}
	if n >= maxIntegerSupport {
		return 0, 0, core.NewParameterError("n", fmt.Sprintf("must be below %d, got %g", maxIntegerSupport, n))
	}
	if prob, err = probability(p, "p"); err != nil {
		return 0, 0, err
	}
	return n, prob, nil
}

// model returns the distuv binomial, or a point mass when p sits on a
// boundary and every trial has the same outcome.
func (b Binomial) model(p dist.Params, src rand.Source) (discreteModel, float64, float64, error) {
	n, prob, err := b.params(p)
	if err != nil {
		return nil, 0, 0, err
	}
	switch prob {
	case 0:
		return pointMass{at: 0}, n, prob, nil
	case 1:
		return pointMass{at: n}, n, prob, nil
	}
	return distuv.Binomial{N: n, P: prob, Src: src}, n, prob, nil
}

func (b Binomial) Validate(p dist.Params) error {
	_, _, err := b.params(p)
	return err
}

func (b Binomial) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	m, n, _, err := b.model(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		if domain, err = integerSupport(0, n); err != nil {
			return nil, err
		}
	}
	return evaluate(dist.KindMass, domain, m), nil
}

func (b Binomial) Statistics(p dist.Params) (dist.Statistics, error) {
	n, prob, err := b.params(p)
	if err != nil {
		return nil, err
	}
	return bernoulliTrials(n, prob), nil
}

// bernoulliTrials is the moment set of a sum of n Bernoulli(p) trials.
// Skewness and kurtosis do not exist once the variance collapses to zero.
func bernoulliTrials(n, p float64) dist.Statistics {
	q := 1 - p
	v := n * p * q
	if v == 0 {
		return moments(
			dist.Value(dist.StatMean, n*p),
			dist.Value(dist.StatVariance, 0),
			dist.Value(dist.StatStdDev, 0),
			dist.Undefined(dist.StatSkewness),
			dist.Undefined(dist.StatKurtosis),
		)
	}
	return closedForm(n*p, v, (1-2*p)/math.Sqrt(v), (1-6*p*q)/v)
}

func (b Binomial) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	m, _, _, err := b.model(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, m), nil
}

func (b Binomial) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	if err := b.Validate(p); err != nil {
		return nil, err
	}
	return nil, core.NewUnsupportedError(b.Name(), "quantile function")
}

func (Binomial) ComparisonParams() dist.Params {
	return dist.Params{"n": 10, "p": 0.5}
}

func (Binomial) Info() string {
	return `Models the number of successes in n independent trials, each succeeding with probability p. Approaches a normal shape for large n.

**Parameter Effects:**
- Number of trials (n): widens the support and raises the variance; for p = 0.5 the shape becomes more symmetric as n grows.
- Probability of success (p): moves the mean (n·p); the curve is right-skewed for p < 0.5 and left-skewed for p > 0.5.`
}
