package sampling

import (
	"math"

	"github.com/montanaflynn/stats"

	"distviz/domain/dist"
)

// MomentCheck compares one empirical moment with its closed form
type MomentCheck struct {
	Name        string  `json:"name"`
	Sample      float64 `json:"sample"`
	Theoretical float64 `json:"theoretical"`
	Difference  float64 `json:"difference"`
}

// Profile places a sample's shape next to the theoretical statistics
type Profile struct {
	Skewness float64       `json:"skewness"`
	Kurtosis float64       `json:"kurtosis"` // Non-excess, normal = 3
	Checks   []MomentCheck `json:"checks"`
}

// NewProfile computes sample skewness and kurtosis and checks each defined
// theoretical moment against its empirical counterpart. Theoretical entries
// carrying a sentinel are skipped.
func NewProfile(data []float64, theoretical dist.Statistics) (Profile, error) {
	var p Profile
	mean, err := stats.Mean(data)
	if err != nil {
		return p, err
	}
	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return p, err
	}
	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return p, err
	}

	p.Skewness = calculateSkewness(data, mean, stdDev)
	p.Kurtosis = calculateKurtosis(data, mean, stdDev)

	empirical := map[string]float64{
		dist.StatMean:     mean,
		dist.StatVariance: variance,
		dist.StatStdDev:   stdDev,
		dist.StatSkewness: p.Skewness,
		dist.StatKurtosis: p.Kurtosis,
	}
	for _, st := range theoretical {
		sample, ok := empirical[st.Name]
		if !ok || !st.Defined() {
			continue
		}
		p.Checks = append(p.Checks, MomentCheck{
			Name:        st.Name,
			Sample:      sample,
			Theoretical: st.Value,
			Difference:  sample - st.Value,
		})
	}
	return p, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	return skewness * math.Sqrt(n*(n-1)) / (n - 2)
}

// calculateKurtosis computes bias-corrected sample kurtosis, reported
// non-excess so it lines up with the closed-form statistics
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		d2 := deviation * deviation
		sumFourthDeviations += d2 * d2
	}

	excess := sumFourthDeviations/n - 3
	excess = ((n+1)*excess + 6) * (n - 1) / ((n - 2) * (n - 3))
	return excess + 3
}
