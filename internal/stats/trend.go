// Package stats provides the pure statistical primitives the forecasters are
// built from. Every function treats its input as read-only and signals
// insufficient data with an empty result instead of an error.
package stats

// MovingAverage returns the trailing-window averages of values. The result
// has exactly len(values)-window+1 entries; fewer than window points yields
// an empty slice.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return []float64{}
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// ExponentialMovingAverage computes ema[0]=v[0], ema[i]=a*v[i]+(1-a)*ema[i-1].
// Alpha outside (0,1) is accepted as-is; the output is simply degenerate
// (non-smoothing) rather than rejected.
func ExponentialMovingAverage(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// GrowthRates annotates each point with its consecutive growth ratio.
// The first entry and any entry following an exact zero are 0.
func GrowthRates(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			out[i] = 0
			continue
		}
		out[i] = (values[i] - prev) / prev
	}
	return out
}

// CumulativeSums annotates each point with the running total up to it.
func CumulativeSums(values []float64) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		out[i] = sum
	}
	return out
}
