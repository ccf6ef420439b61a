package variants

import (
	"fmt"

	"distviz/domain/core"
	"distviz/ports"
)

// Registry is the fixed, ordered mapping from display name to variant. It is
// built once and never modified; pass it to whatever needs name resolution.
type Registry struct {
	order  []ports.Variant
	byName map[string]ports.Variant
}

var _ ports.RegistryPort = (*Registry)(nil)

// NewRegistry builds a registry from variants in display order. Names must
// be unique and non-empty.
func NewRegistry(vs ...ports.Variant) (*Registry, error) {
	r := &Registry{
		order:  make([]ports.Variant, 0, len(vs)),
		byName: make(map[string]ports.Variant, len(vs)),
	}
	for _, v := range vs {
		name := v.Name()
		if name == "" {
			return nil, fmt.Errorf("variants: empty distribution name")
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("variants: duplicate distribution name %q", name)
		}
		r.byName[name] = v
		r.order = append(r.order, v)
	}
	return r, nil
}

// New builds the registry of all supported distributions, with continuous
// default domains of the given resolution.
func New(points int) *Registry {
	r, err := NewRegistry(
		NewNormal(points),
		NewStandardNormal(points),
		NewChiSquare(points),
		NewBinomial(),
		NewBernoulli(),
		NewUniform(points),
		NewFDistribution(points),
		NewStudentsT(points),
		NewPoisson(),
		NewBeta(points),
		NewGamma(points),
		NewExponential(points),
		NewLogNormal(points),
	)
	if err != nil {
		// Names above are literals; a collision is a programming error.
		panic(err)
	}
	return r
}

// Default builds the registry with DefaultPoints resolution.
func Default() *Registry {
	return New(DefaultPoints)
}

// Lookup resolves a variant by name. It never falls back to a default.
func (r *Registry) Lookup(name string) (ports.Variant, error) {
	v, ok := r.byName[name]
	if !ok {
		return nil, core.NewDistributionNotFoundError(name)
	}
	return v, nil
}

// Names returns the display names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, v := range r.order {
		out[i] = v.Name()
	}
	return out
}

// Variants returns the variants in registration order.
func (r *Registry) Variants() []ports.Variant {
	out := make([]ports.Variant, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered variants.
func (r *Registry) Len() int {
	return len(r.order)
}
