package dist

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"distviz/domain/core"
)

// ============================================================================
// KIND
// ============================================================================

// Kind discriminates continuous from discrete variants. It is a fixed
// property of each variant and governs how a curve is rendered.
type Kind string

const (
	KindDensity Kind = "density" // Continuous: values on closely spaced points
	KindMass    Kind = "mass"    // Discrete: values on an explicit support set
)

// Label returns the short curve label used by hosts ("PDF" / "PMF").
func (k Kind) Label() string {
	if k == KindMass {
		return "PMF"
	}
	return "PDF"
}

// ============================================================================
// PARAMETERS
// ============================================================================

// Params maps parameter names to numeric values for one variant.
type Params map[string]float64

// Get returns the named parameter or a missing-parameter error.
func (p Params) Get(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, core.NewMissingParameterError(name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, core.NewParameterError(name, "must be finite")
	}
	return v, nil
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParamSpec declares one input a variant needs, with the legal range the
// input widgets enforce.
type ParamSpec struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
	Integer bool    `json:"integer"` // Only whole numbers are accepted
	Help    string  `json:"help,omitempty"`
}

// Defaults builds a Params from the schema defaults.
func Defaults(specs []ParamSpec) Params {
	out := make(Params, len(specs))
	for _, s := range specs {
		out[s.Name] = s.Default
	}
	return out
}

// CheckRanges rejects any supplied value outside its declared [Min, Max]
// or with a fractional part where Integer is set. Absent and non-finite
// values are left to the variant's own validation.
func CheckRanges(specs []ParamSpec, p Params) error {
	for _, s := range specs {
		v, ok := p[s.Name]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < s.Min || v > s.Max {
			return core.NewParameterError(s.Name, fmt.Sprintf("must lie in [%g, %g], got %g", s.Min, s.Max, v))
		}
		if s.Integer && v != math.Trunc(v) {
			return core.NewParameterError(s.Name, fmt.Sprintf("must be a whole number, got %g", v))
		}
	}
	return nil
}

// ============================================================================
// CURVE
// ============================================================================

// Curve is the result of evaluating a variant over a domain.
// INVARIANTS:
// - len(X) == len(Y)
// - CDF is nil or len(CDF) == len(X)
// - X is never mutated after return
type Curve struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`             // Density (continuous) or mass (discrete)
	CDF  []float64 `json:"cdf,omitempty"` // Absent when nil
	Kind Kind      `json:"kind"`
}

// Len returns the number of domain points.
func (c *Curve) Len() int {
	return len(c.X)
}

// MaxY returns the largest density/mass value, or 0 for an empty curve.
func (c *Curve) MaxY() float64 {
	max := 0.0
	for _, y := range c.Y {
		if y > max && !math.IsInf(y, 1) {
			max = y
		}
	}
	return max
}

// ============================================================================
// STATISTICS
// ============================================================================

// Canonical statistic names, in display order.
const (
	StatMean     = "Mean"
	StatVariance = "Variance"
	StatStdDev   = "Standard Deviation"
	StatSkewness = "Skewness"
	StatKurtosis = "Kurtosis"
)

// CanonicalStatistics lists the statistic names every result carries.
var CanonicalStatistics = []string{StatMean, StatVariance, StatStdDev, StatSkewness, StatKurtosis}

// Sentinel marks a statistic whose closed form does not yield a number.
type Sentinel string

const (
	SentinelNone      Sentinel = ""
	SentinelInfinite  Sentinel = "∞"         // Moment diverges
	SentinelUndefined Sentinel = "undefined" // Moment does not exist
)

// Statistic is one named closed-form moment.
type Statistic struct {
	Name     string
	Value    float64
	Sentinel Sentinel
}

// Defined reports whether the statistic carries a numeric value.
func (s Statistic) Defined() bool {
	return s.Sentinel == SentinelNone
}

// String renders the value the way the hosts display it.
func (s Statistic) String() string {
	if !s.Defined() {
		return string(s.Sentinel)
	}
	return strconv.FormatFloat(s.Value, 'g', -1, 64)
}

// Statistics is an ordered statistic set.
type Statistics []Statistic

// Get looks up a statistic by name.
func (s Statistics) Get(name string) (Statistic, bool) {
	for _, st := range s {
		if st.Name == name {
			return st, true
		}
	}
	return Statistic{}, false
}

// MarshalJSON emits an ordered list of {name, value} objects where value is
// either a number or the sentinel string.
func (s Statistics) MarshalJSON() ([]byte, error) {
	type entry struct {
		Name  string      `json:"name"`
		Value interface{} `json:"value"`
	}
	out := make([]entry, len(s))
	for i, st := range s {
		if st.Defined() {
			out[i] = entry{Name: st.Name, Value: st.Value}
		} else {
			out[i] = entry{Name: st.Name, Value: string(st.Sentinel)}
		}
	}
	return json.Marshal(out)
}

// Value builds a numeric statistic.
func Value(name string, v float64) Statistic {
	return Statistic{Name: name, Value: v}
}

// Infinite builds a divergent statistic.
func Infinite(name string) Statistic {
	return Statistic{Name: name, Value: math.Inf(1), Sentinel: SentinelInfinite}
}

// Undefined builds a statistic with no closed form for the parameters.
func Undefined(name string) Statistic {
	return Statistic{Name: name, Value: math.NaN(), Sentinel: SentinelUndefined}
}

// ============================================================================
// QUANTILES
// ============================================================================

// ReferenceProbabilities are the thresholds marked on a quantile overlay.
var ReferenceProbabilities = []float64{0.025, 0.25, 0.5, 0.75, 0.975}

// QuantileMarker is one threshold on the curve.
type QuantileMarker struct {
	Probability float64 `json:"probability"`
	Value       float64 `json:"value"`
	Label       string  `json:"label"` // e.g. "2.5%"
}
