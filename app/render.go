package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"distviz/domain/core"
	"distviz/domain/dist"
)

// quantileLabelHeight places quantile labels relative to the curve peak
const quantileLabelHeight = 0.9

// RenderRequest captures the state of the input controls for one interaction
type RenderRequest struct {
	Distribution   string      `json:"distribution"`
	Params         dist.Params `json:"params"`
	Domain         []float64   `json:"domain,omitempty"`
	ShowCDF        bool        `json:"show_cdf"`
	ShowStatistics bool        `json:"show_statistics"`
	ShowQuantiles  bool        `json:"show_quantiles"`
	SampleCount    int         `json:"sample_count,omitempty"` // 0 draws nothing
	SampleSeed     uint64      `json:"sample_seed,omitempty"`  // 0 uses the shared source
	CompareWith    string      `json:"compare_with,omitempty"`
}

// RenderResult holds everything produced for one interaction
type RenderResult struct {
	Distribution         string                `json:"distribution"`
	Params               dist.Params           `json:"params"`
	Curve                *dist.Curve           `json:"curve"`
	Statistics           dist.Statistics       `json:"statistics,omitempty"`
	Quantiles            []dist.QuantileMarker `json:"quantiles,omitempty"`
	QuantileLabelY       float64               `json:"quantile_label_y,omitempty"` // Height of the quantile labels
	QuantilesUnsupported bool                  `json:"quantiles_unsupported,omitempty"`
	Samples              *SampleSet            `json:"samples,omitempty"`
	SampleError          string                `json:"sample_error,omitempty"`
	Comparison           *Comparison           `json:"comparison,omitempty"`
}

// Render performs one interaction. Lookup, validation and curve failures
// abort; sampling failures and a missing quantile function are recorded on
// the result.
func (s *VisualizerService) Render(req RenderRequest) (*RenderResult, error) {
	v, params, err := s.resolve(req.Distribution, req.Params)
	if err != nil {
		return nil, err
	}
	curve, err := v.Curve(params, req.Domain)
	if err != nil {
		return nil, err
	}

	result := &RenderResult{
		Distribution: v.Name(),
		Params:       params.Clone(),
		Curve:        curve,
	}

	if req.CompareWith != "" {
		cmp, ok, err := s.Compare(v.Name(), curve, req.CompareWith)
		if err != nil {
			return nil, err
		}
		if ok {
			other, err := s.registry.Lookup(req.CompareWith)
			if err != nil {
				return nil, err
			}
			if !req.ShowCDF {
				cmp.CDF = nil
			}
			result.Comparison = &Comparison{
				Name:   other.Name(),
				Params: other.ComparisonParams(),
				Curve:  cmp,
			}
		}
	}
	if !req.ShowCDF {
		curve.CDF = nil
	}

	if req.ShowStatistics {
		if result.Statistics, err = v.Statistics(params); err != nil {
			return nil, err
		}
	}

	if req.ShowQuantiles {
		markers, err := s.Quantiles(v.Name(), params, nil)
		switch {
		case core.IsUnsupportedError(err):
			result.QuantilesUnsupported = true
		case err != nil:
			return nil, err
		default:
			result.Quantiles = markers
			result.QuantileLabelY = quantileLabelHeight * curve.MaxY()
		}
	}

	if req.SampleCount != 0 {
		set, err := s.Samples(v.Name(), params, req.SampleCount, req.SampleSeed)
		if err != nil {
			s.logger.Warn("sampling %s failed: %v", v.Name(), err)
			result.SampleError = err.Error()
		} else {
			result.Samples = set
		}
	}

	return result, nil
}

// CatalogEntry describes a distribution at its default parameters
type CatalogEntry struct {
	Name         string          `json:"name"`
	Kind         dist.Kind       `json:"kind"`
	Defaults     dist.Params     `json:"defaults"`
	Statistics   dist.Statistics `json:"statistics"`
	HasQuantiles bool            `json:"has_quantiles"`
}

// Catalog computes default-parameter statistics for every distribution.
// Variants are pure and never touch the random source, so entries are
// computed concurrently.
func (s *VisualizerService) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	variants := s.registry.Variants()
	entries := make([]CatalogEntry, len(variants))

	g, ctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defaults := dist.Defaults(v.Parameters())
			stats, err := v.Statistics(defaults)
			if err != nil {
				return err
			}
			_, qerr := v.Quantile(defaults)
			entries[i] = CatalogEntry{
				Name:         v.Name(),
				Kind:         v.Kind(),
				Defaults:     defaults,
				Statistics:   stats,
				HasQuantiles: qerr == nil,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
