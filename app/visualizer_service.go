package app

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"distviz/domain/core"
	"distviz/domain/dist"
	"distviz/internal"
	"distviz/internal/config"
	"distviz/internal/sampling"
	"distviz/ports"
)

// VisualizerService orchestrates one visualizer interaction over the registry
type VisualizerService struct {
	registry ports.RegistryPort
	rngPort  ports.RNGPort
	sampling config.SamplingConfig
	logger   *internal.Logger
}

// DistributionSummary identifies one selectable distribution
type DistributionSummary struct {
	Name       string    `json:"name"`
	Kind       dist.Kind `json:"kind"`
	CurveLabel string    `json:"curve_label"` // "PDF" or "PMF"
}

// Description is everything a host needs to build the input form for a distribution
type Description struct {
	Name             string           `json:"name"`
	Kind             dist.Kind        `json:"kind"`
	CurveLabel       string           `json:"curve_label"`
	Parameters       []dist.ParamSpec `json:"parameters"`
	Defaults         dist.Params      `json:"defaults"`
	ComparisonParams dist.Params      `json:"comparison_params"`
	HasQuantiles     bool             `json:"has_quantiles"`
	Info             string           `json:"info"` // Markdown
}

// SampleSet is a draw together with its descriptive views
type SampleSet struct {
	Values         []float64           `json:"values"`
	Seed           uint64              `json:"seed,omitempty"` // Replays this draw when non-zero
	Summary        sampling.Summary    `json:"summary"`
	Histogram      *sampling.Histogram `json:"histogram,omitempty"`
	HistogramError string              `json:"histogram_error,omitempty"`
	Profile        sampling.Profile    `json:"profile"`
	// OverlayScale converts curve heights into expected bin counts
	OverlayScale float64 `json:"overlay_scale"`
}

// Comparison is a second distribution evaluated on the primary domain
type Comparison struct {
	Name   string      `json:"name"`
	Params dist.Params `json:"params"`
	Curve  *dist.Curve `json:"curve"`
}

// NewVisualizerService creates a visualizer service
func NewVisualizerService(registry ports.RegistryPort, rngPort ports.RNGPort, samplingCfg config.SamplingConfig, logger *internal.Logger) *VisualizerService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &VisualizerService{
		registry: registry,
		rngPort:  rngPort,
		sampling: samplingCfg,
		logger:   logger.With("visualizer"),
	}
}

// Distributions lists the registered distributions in display order
func (s *VisualizerService) Distributions() []DistributionSummary {
	variants := s.registry.Variants()
	out := make([]DistributionSummary, len(variants))
	for i, v := range variants {
		out[i] = DistributionSummary{Name: v.Name(), Kind: v.Kind(), CurveLabel: v.Kind().Label()}
	}
	return out
}

// Describe returns the parameter schema and info text of a distribution
func (s *VisualizerService) Describe(name string) (*Description, error) {
	v, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	specs := v.Parameters()
	defaults := dist.Defaults(specs)
	_, qerr := v.Quantile(defaults)
	return &Description{
		Name:             v.Name(),
		Kind:             v.Kind(),
		CurveLabel:       v.Kind().Label(),
		Parameters:       specs,
		Defaults:         defaults,
		ComparisonParams: v.ComparisonParams(),
		HasQuantiles:     qerr == nil,
		Info:             v.Info(),
	}, nil
}

// resolve looks up a variant and fills in its defaults when no parameters
// were supplied at all. A partial parameter set is passed through so that
// missing keys are reported. Values must also sit inside the declared
// parameter ranges.
func (s *VisualizerService) resolve(name string, params dist.Params) (ports.Variant, dist.Params, error) {
	v, err := s.registry.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	if params == nil {
		params = dist.Defaults(v.Parameters())
	}
	if err := v.Validate(params); err != nil {
		return nil, nil, err
	}
	if err := dist.CheckRanges(v.Parameters(), params); err != nil {
		return nil, nil, err
	}
	return v, params, nil
}

// Curve evaluates a distribution on its default domain, or on domain when given
func (s *VisualizerService) Curve(name string, params dist.Params, domain []float64) (*dist.Curve, error) {
	v, params, err := s.resolve(name, params)
	if err != nil {
		return nil, err
	}
	curve, err := v.Curve(params, domain)
	if err != nil {
		return nil, err
	}
	s.logger.Trace("evaluated %s on %d points", v.Name(), curve.Len())
	return curve, nil
}

// Statistics returns the closed-form statistic set of a distribution
func (s *VisualizerService) Statistics(name string, params dist.Params) (dist.Statistics, error) {
	v, params, err := s.resolve(name, params)
	if err != nil {
		return nil, err
	}
	return v.Statistics(params)
}

// Quantiles returns markers at the given probabilities, or at the reference
// probabilities when none are given. Variants without an inverse CDF fail
// with core.ErrUnsupported.
func (s *VisualizerService) Quantiles(name string, params dist.Params, probs []float64) ([]dist.QuantileMarker, error) {
	v, params, err := s.resolve(name, params)
	if err != nil {
		return nil, err
	}
	q, err := v.Quantile(params)
	if err != nil {
		return nil, err
	}
	if len(probs) == 0 {
		probs = dist.ReferenceProbabilities
	}
	markers := make([]dist.QuantileMarker, 0, len(probs))
	for _, p := range probs {
		x, err := q(p)
		if err != nil {
			return nil, err
		}
		markers = append(markers, dist.QuantileMarker{
			Probability: p,
			Value:       x,
			Label:       percentLabel(p),
		})
	}
	return markers, nil
}

// percentLabel renders 0.025 as "2.5%"
func percentLabel(p float64) string {
	pct := math.Round(p*1e6) / 1e4
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// Samples draws n variates and describes them. n of zero selects the
// configured default size. A zero seed draws from the shared random source;
// any other seed draws from a stream derived from the distribution name and
// seed, so the same request returns the same values.
func (s *VisualizerService) Samples(name string, params dist.Params, n int, seed uint64) (*SampleSet, error) {
	if n == 0 {
		n = s.sampling.DefaultSize
	}
	if n < s.sampling.MinSize || n > s.sampling.MaxSize {
		return nil, fmt.Errorf("%w: %d outside [%d, %d]",
			core.ErrInvalidSampleSize, n, s.sampling.MinSize, s.sampling.MaxSize)
	}
	v, params, err := s.resolve(name, params)
	if err != nil {
		return nil, err
	}

	var src rand.Source
	if seed != 0 {
		src = s.rngPort.SeededStream(v.Name(), seed)
	} else {
		src = s.rngPort.Source()
	}
	values, err := v.Sample(params, n, src)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("drew %d samples from %s (seed %d)", n, v.Name(), seed)

	set := &SampleSet{Values: values, Seed: seed}
	if set.Summary, err = sampling.Summarize(values); err != nil {
		return nil, err
	}

	theoretical, err := v.Statistics(params)
	if err != nil {
		return nil, err
	}
	if set.Profile, err = sampling.NewProfile(values, theoretical); err != nil {
		return nil, err
	}

	hist, err := sampling.NewHistogram(values, s.sampling.HistogramBins)
	if err != nil {
		s.logger.Debug("histogram skipped for %s: %v", v.Name(), err)
		set.HistogramError = err.Error()
		return set, nil
	}
	set.Histogram = hist
	set.OverlayScale = overlayScale(v.Kind(), hist)
	return set, nil
}

// overlayScale is the factor mapping a density onto expected bin counts
// (total * bin width) or a mass onto expected occurrences (total).
func overlayScale(kind dist.Kind, h *sampling.Histogram) float64 {
	if kind == dist.KindMass {
		return float64(h.Total)
	}
	return float64(h.Total) * h.BinWidth
}

// Compare evaluates the comparison distribution with its fixed comparison
// parameters on the primary curve's domain. Comparing a distribution with
// itself is skipped and reported with ok=false.
func (s *VisualizerService) Compare(primaryName string, primary *dist.Curve, comparisonName string) (*dist.Curve, bool, error) {
	if comparisonName == primaryName {
		return nil, false, nil
	}
	if primary == nil || primary.Len() == 0 {
		return nil, false, fmt.Errorf("%w: comparison needs a primary domain", core.ErrInvalidParameter)
	}
	v, err := s.registry.Lookup(comparisonName)
	if err != nil {
		return nil, false, err
	}
	curve, err := v.Curve(v.ComparisonParams(), primary.X)
	if err != nil {
		return nil, false, err
	}
	return curve, true, nil
}
