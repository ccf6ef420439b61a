package ports

import (
	"math/rand/v2"

	"distviz/domain/dist"
)

// QuantileFunc maps a probability in (0, 1) to the value below which that
// share of the distribution lies.
type QuantileFunc func(p float64) (float64, error)

// Variant is the capability set every supported distribution family
// implements. Variants are stateless; all variation arrives through Params.
type Variant interface {
	// Name is the unique registry key, e.g. "Chi-square"
	Name() string

	// Kind is fixed per variant: density for continuous, mass for discrete
	Kind() dist.Kind

	// Parameters returns the ordered parameter schema
	Parameters() []dist.ParamSpec

	// Validate checks presence and physical constraints of the parameters
	Validate(p dist.Params) error

	// Curve evaluates density/mass and cumulative values. A nil domain selects
	// the variant's default domain; otherwise the domain is reused verbatim.
	Curve(p dist.Params, domain []float64) (*dist.Curve, error)

	// Statistics returns the closed-form moment set with sentinels
	Statistics(p dist.Params) (dist.Statistics, error)

	// Sample draws n independent variates, consuming only src
	Sample(p dist.Params, n int, src rand.Source) ([]float64, error)

	// Quantile returns the inverse CDF, or core.ErrUnsupported
	Quantile(p dist.Params) (QuantileFunc, error)

	// ComparisonParams is the fixed parameter set used for overlays
	ComparisonParams() dist.Params

	// Info is a markdown description with parameter effects
	Info() string
}
