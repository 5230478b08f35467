package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary returns the mean and standard deviation of the values.
// Returns zeros for an empty slice.
func Summary(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	std = stat.StdDev(values, nil)
	return mean, std
}

// Quantile returns the p-th empirical quantile of the values, p in [0, 1].
// Returns 0 for an empty slice.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// AcceptanceRate returns the fraction of accepted records.
func AcceptanceRate(records []AttemptRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	accepted := 0
	for _, r := range records {
		if r.Accepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(records))
}
