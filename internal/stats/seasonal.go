package stats

// SeasonalIndices extracts multiplicative seasonal factors: points are
// bucketed by index % seasonality and each factor is the bucket average
// divided by the overall average. Fewer than seasonality points yields an
// empty slice; a zero overall average degenerates every index to 1.
func SeasonalIndices(values []float64, seasonality int) []float64 {
	if seasonality <= 0 || len(values) < seasonality {
		return []float64{}
	}

	sums := make([]float64, seasonality)
	counts := make([]int, seasonality)
	var total float64
	for i, v := range values {
		sums[i%seasonality] += v
		counts[i%seasonality]++
		total += v
	}
	overall := total / float64(len(values))

	indices := make([]float64, seasonality)
	for i := range indices {
		if overall == 0 || counts[i] == 0 {
			indices[i] = 1
			continue
		}
		indices[i] = (sums[i] / float64(counts[i])) / overall
	}
	return indices
}
