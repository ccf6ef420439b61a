// Package variants implements the supported distribution families on top of
// gonum's distuv, together with the registry that resolves them by name.
package variants

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"distviz/domain/core"
	"distviz/domain/dist"
)

// DefaultPoints is the length of a default continuous domain.
const DefaultPoints = 500

// evaluator is the part of a distuv distribution a curve needs.
type evaluator interface {
	Prob(x float64) float64
	CDF(x float64) float64
}

// discreteModel is a mass function that can also draw variates.
type discreteModel interface {
	evaluator
	randomizer
}

// continuous carries the domain resolution shared by density variants.
type continuous struct {
	points int
}

func newContinuous(points int) continuous {
	if points < 2 {
		points = DefaultPoints
	}
	return continuous{points: points}
}

// span returns an evenly spaced domain over [lo, hi].
func (c continuous) span(lo, hi float64) []float64 {
	return floats.Span(make([]float64, c.points), lo, hi)
}

// maxIntegerSupport caps the length of a default discrete support.
const maxIntegerSupport = 10000

// integerSupport returns the ascending integers lo..hi inclusive. Bounds
// that are not finite, reversed or further apart than maxIntegerSupport
// are rejected.
func integerSupport(lo, hi float64) ([]float64, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi < lo {
		return nil, fmt.Errorf("%w: no discrete support between %g and %g", core.ErrInvalidParameter, lo, hi)
	}
	lo, hi = math.Ceil(lo), math.Floor(hi)
	if hi-lo+1 > maxIntegerSupport {
		return nil, fmt.Errorf("%w: discrete support %g..%g exceeds %d points",
			core.ErrInvalidParameter, lo, hi, maxIntegerSupport)
	}
	out := make([]float64, 0, int(hi-lo)+1)
	for k := lo; k <= hi; k++ {
		out = append(out, k)
	}
	return out, nil
}

// evaluate computes density/mass and cumulative values on a copy of domain.
// Singular densities (e.g. chi-square with one degree of freedom at zero)
// are reported as zero so the curve stays finite.
func evaluate(kind dist.Kind, domain []float64, e evaluator) *dist.Curve {
	x := make([]float64, len(domain))
	copy(x, domain)
	y := make([]float64, len(x))
	cdf := make([]float64, len(x))
	for i, v := range x {
		pv := e.Prob(v)
		if kind == dist.KindMass && v != math.Floor(v) {
			pv = 0
		}
		y[i] = finiteOrZero(pv)
		cdf[i] = clamp01(e.CDF(v))
	}
	return &dist.Curve{X: x, Y: y, CDF: cdf, Kind: kind}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// pointMass is a degenerate discrete distribution concentrated at one value.
type pointMass struct {
	at float64
}

func (m pointMass) Prob(x float64) float64 {
	if x == m.at {
		return 1
	}
	return 0
}

func (m pointMass) CDF(x float64) float64 {
	if x < m.at {
		return 0
	}
	return 1
}

func (m pointMass) Rand() float64 {
	return m.at
}
