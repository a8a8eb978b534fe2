package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DetectOutliers flags indices whose population z-score magnitude exceeds
// threshold. A zero-variance series has no outliers.
func DetectOutliers(values []float64, threshold float64) []int {
	if len(values) == 0 {
		return []int{}
	}
	mean := stat.Mean(values, nil)
	std := stat.PopStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return []int{}
	}

	out := []int{}
	for i, v := range values {
		if math.Abs((v-mean)/std) > threshold {
			out = append(out, i)
		}
	}
	return out
}

// PopulationStdDev is the population standard deviation of values, with the
// empty and single-point cases resolved to 0.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	std := stat.PopStdDev(values, nil)
	if math.IsNaN(std) {
		return 0
	}
	return std
}

// Mean is the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
