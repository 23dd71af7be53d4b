package design

import (
	"math"

	"github.com/montanaflynn/stats"
)

// VectorSummary condenses a numeric vector for report footers and logs.
type VectorSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes summary statistics over data, skipping NaN and Inf
// entries (an infinite RSE is reportable per-parameter but poisons the
// aggregate). Returns a zero summary for an empty or all-invalid vector.
func Summarize(data []float64) VectorSummary {
	clean := make([]float64, 0, len(data))
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return VectorSummary{}
	}

	mean, _ := stats.Mean(clean)
	median, _ := stats.Median(clean)
	min, _ := stats.Min(clean)
	max, _ := stats.Max(clean)

	return VectorSummary{
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
	}
}
