package config

import (
	"fmt"

	"distviz/domain/dist"
)

// ParamRange is one row of the widget range table
type ParamRange struct {
	Min     float64
	Max     float64
	Default float64
	Step    float64
	Integer bool
}

// ParameterTable declares the legal range of every parameter name used
// across the distribution variants. Variants may narrow or shift a row
// through Spec overrides but never invent names missing here.
var ParameterTable = map[string]ParamRange{
	"mean":  {Min: -10.0, Max: 10.0, Default: 0.0, Step: 0.1},
	"std":   {Min: 0.1, Max: 5.0, Default: 1.0, Step: 0.1},
	"df":    {Min: 1, Max: 30, Default: 5, Step: 1, Integer: true},
	"n":     {Min: 1, Max: 100, Default: 20, Step: 1, Integer: true},
	"p":     {Min: 0.0, Max: 1.0, Default: 0.5, Step: 0.01},
	"low":   {Min: -10.0, Max: 10.0, Default: 0.0, Step: 0.1},
	"high":  {Min: -10.0, Max: 10.0, Default: 5.0, Step: 0.1},
	"dfn":   {Min: 1, Max: 50, Default: 5, Step: 1, Integer: true},
	"dfd":   {Min: 1, Max: 50, Default: 2, Step: 1, Integer: true},
	"mu":    {Min: 0.1, Max: 20.0, Default: 4.0, Step: 0.1},
	"a":     {Min: 0.1, Max: 10.0, Default: 2.0, Step: 0.1},
	"b":     {Min: 0.1, Max: 10.0, Default: 5.0, Step: 0.1},
	"shape": {Min: 0.1, Max: 10.0, Default: 2.0, Step: 0.1},
	"scale": {Min: 0.1, Max: 5.0, Default: 2.0, Step: 0.1},
}

// SpecOption adjusts a table row for one variant
type SpecOption func(*dist.ParamSpec)

// WithDefault overrides the default value
func WithDefault(v float64) SpecOption {
	return func(s *dist.ParamSpec) { s.Default = v }
}

// WithRange overrides the bounds
func WithRange(min, max float64) SpecOption {
	return func(s *dist.ParamSpec) {
		s.Min = min
		s.Max = max
	}
}

// Spec builds the ParamSpec for a table row. It panics on names absent from
// the table, which only happens through a programming error in a variant.
func Spec(name, label, help string, opts ...SpecOption) dist.ParamSpec {
	row, ok := ParameterTable[name]
	if !ok {
		panic(fmt.Sprintf("config: parameter %q missing from ParameterTable", name))
	}
	s := dist.ParamSpec{
		Name:    name,
		Label:   label,
		Min:     row.Min,
		Max:     row.Max,
		Default: row.Default,
		Step:    row.Step,
		Integer: row.Integer,
		Help:    help,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
