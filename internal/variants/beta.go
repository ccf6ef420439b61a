package variants

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/dist"
	"distviz/internal/config"
	"distviz/ports"
)

// Beta is the two-shape family on [0, 1].
type Beta struct {
	continuous
}

// NewBeta creates the Beta variant.
func NewBeta(points int) Beta {
	return Beta{continuous: newContinuous(points)}
}

func (Beta) Name() string    { return "Beta" }
func (Beta) Kind() dist.Kind { return dist.KindDensity }

func (Beta) Parameters() []dist.ParamSpec {
	return []dist.ParamSpec{
		config.Spec("a", "Alpha (α)", "First shape parameter"),
		config.Spec("b", "Beta (β)", "Second shape parameter"),
	}
}

func (Beta) build(p dist.Params, src rand.Source) (distuv.Beta, error) {
	a, err := positive(p, "a")
	if err != nil {
		return distuv.Beta{}, err
	}
	b, err := positive(p, "b")
	if err != nil {
		return distuv.Beta{}, err
	}
	return distuv.Beta{Alpha: a, Beta: b, Src: src}, nil
}

func (b Beta) Validate(p dist.Params) error {
	_, err := b.build(p, nil)
	return err
}

func (b Beta) Curve(p dist.Params, domain []float64) (*dist.Curve, error) {
	d, err := b.build(p, nil)
	if err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		domain = b.span(0, 1)
	}
	return evaluate(dist.KindDensity, domain, d), nil
}

func (b Beta) Statistics(p dist.Params) (dist.Statistics, error) {
	d, err := b.build(p, nil)
	if err != nil {
		return nil, err
	}
	a, bb := d.Alpha, d.Beta
	sum := a + bb
	mean := a / sum
	variance := a * bb / (sum * sum * (sum + 1))
	skewness := 2 * (bb - a) * math.Sqrt(sum+1) / ((sum + 2) * math.Sqrt(a*bb))
	exKurtosis := 6 * ((a-bb)*(a-bb)*(sum+1) - a*bb*(sum+2)) / (a * bb * (sum + 2) * (sum + 3))
	return closedForm(mean, variance, skewness, exKurtosis), nil
}

func (b Beta) Sample(p dist.Params, count int, src rand.Source) ([]float64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	d, err := b.build(p, src)
	if err != nil {
		return nil, err
	}
	return draw(count, d), nil
}

func (b Beta) Quantile(p dist.Params) (ports.QuantileFunc, error) {
	d, err := b.build(p, nil)
	if err != nil {
		return nil, err
	}
	return quantileOf(d), nil
}

func (Beta) ComparisonParams() dist.Params {
	return dist.Params{"a": 2, "b": 2}
}

func (Beta) Info() string {
	return `Bounded on [0, 1], which makes it a natural model for probabilities and proportions. The two shape parameters produce U-shaped, bell-shaped or skewed curves.

**Parameter Effects:**
- Alpha (α): pulls mass toward 1; when α > β the curve leans right.
- Beta (β): pulls mass toward 0; the curve is symmetric when α = β.`
}
