package sampling

import (
	"fmt"

	moremath "github.com/aclements/go-moremath/stats"

	"distviz/domain/core"
)

// Bin is one histogram bar covering [Lo, Hi)
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count uint    `json:"count"`
}

// Histogram is a fixed-width binning of a sample between its extremes
type Histogram struct {
	Bins     []Bin   `json:"bins"`
	BinWidth float64 `json:"bin_width"`
	Total    int     `json:"total"`
}

// NewHistogram bins data into n equal-width bins spanning [min, max]. The
// maximum lands in the last bin. A sample with a single distinct value has
// zero-width bins and is reported as degenerate.
func NewHistogram(data []float64, n int) (*Histogram, error) {
	if n < 1 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", n)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no values to bin", core.ErrDegenerateSample)
	}

	min, max := moremath.Sample{Xs: data}.Bounds()
	if !(max > min) {
		return nil, fmt.Errorf("%w: all %d values equal %g, bins would have zero width",
			core.ErrDegenerateSample, len(data), min)
	}

	h := moremath.NewLinearHist(min, max, n)
	for _, x := range data {
		h.Add(x)
	}
	under, counts, over := h.Counts()

	width := (max - min) / float64(n)
	out := &Histogram{
		Bins:     make([]Bin, n),
		BinWidth: width,
		Total:    len(data),
	}
	for i := range out.Bins {
		out.Bins[i] = Bin{
			Lo:    min + float64(i)*width,
			Hi:    min + float64(i+1)*width,
			Count: counts[i],
		}
	}
	out.Bins[0].Count += under
	out.Bins[n-1].Count += over
	return out, nil
}
