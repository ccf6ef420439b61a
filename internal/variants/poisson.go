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

const (
	// poissonCoverage is the cumulative mass the default support must reach.
	poissonCoverage = 0.999
	// poissonTail is the mass allowed below the first support point.
	poissonTail = 0.0005
	// poissonMinSupport keeps low-rate supports from collapsing to a few bars.
	poissonMinSupport = 10
	// poissonMaxSupport bounds the support width for very large rates.
	poissonMaxSupport = 1000
	// maxExactInteger is where float64 stops representing every integer.
	maxExactInteger = 1 << 53
)

// Poisson counts events in a fixed interval at rate mu.
type Poisson struct{}

// NewPoisson creates the Poisson variant.
func NewPoisson() Poisson {
	return Poisson{}
}

func (Poisson) Name() string    { return "Poisson" }
func (Poisson) Kind() dist.Kind { return dist.KindMass }

func (Poisson) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("mu", "Lambda (λ)", "Rate parameter (mean number of events)"),
	}
}

func (Poisson) build(p dist.Params, src rand.Source) (distuv.Poisson, error) {
	mu, err := positive(p, "mu")
	if err != nil {
		return distuv.Poisson{}, err
	}
	return distuv.Poisson{Lambda: mu, Src: src}, nil
}

func (ps Poisson) Validate(p dist.Params) error {
	_, err := ps.build(p, nil)
	return err
}

// support returns the window lo..hi where lo is the smallest k with
// CDF(k) >= poissonTail and hi the smallest k with CDF(k) >= poissonCoverage.
// The window holds at least poissonMinSupport and at most poissonMaxSupport
// points.
func (Poisson) support(d distuv.Poisson) ([]float64, error) {
	mu := d.Lambda
	if mu+poissonMaxSupport >= maxExactInteger {
		return nil, core.NewParameterError("mu", fmt.Sprintf("too large for a discrete support, got %g", mu))
	}

	// CDF(mu - 8σ) is far below poissonTail, CDF(ceil(mu)) far above it.
	lo := math.Max(0, math.Floor(mu-8*math.Sqrt(mu)))
	hi := math.Ceil(mu)
	for lo < hi {
		mid := math.Floor((lo + hi) / 2)
		if d.CDF(mid) >= poissonTail {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	end := lo
	for end-lo+1 < poissonMaxSupport && (end-lo+1 < poissonMinSupport || d.CDF(end) < poissonCoverage) {
		end++
	}
	return integerSupport(lo, end)
}

func (ps Poisson) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := ps.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		if domain, err = ps.support(d); err != nil {
			return nil, err
		}
	}
	return evaluate(dist.KindMass, domain, d), nil
}

func (ps Poisson) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := ps.build(p, nil)
	if err != nil {
		return nil, err
	}
	mu := d.Lambda
	return closedForm(mu, mu, 1/math.Sqrt(mu), 1/mu), nil
}

func (ps Poisson) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := ps.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (ps Poisson) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	if err := ps.Validate(p); err != nil {
		return nil, err
	}
	return nil, core.NewUnsupportedError(ps.Name(), "quantile function")
}

func (Poisson) ComparisonParams() dist.Params {
	return dist.Params{"mu": 3}
}

func (Poisson) Info() string {
	return `Models the number of events in a fixed interval when events occur independently at a constant rate. Mean and variance are both λ.

**Parameter Effects:**
- Lambda (λ): raises the mean and the variance; the skew shrinks as λ grows and the shape approaches a normal.`
}
