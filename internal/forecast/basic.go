package forecast

import (
	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
	"github.com/salespipe/forecast-engine/internal/stats"
)

// movingAverageDirect computes the full moving-average primitive over the
// series and projects its last value into every future period.
type movingAverageDirect struct{}

func (movingAverageDirect) Name() string { return models.MethodMovingAverage }

func (movingAverageDirect) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 {
		return []models.ForecastPoint{}
	}
	averages := stats.MovingAverage(series.Values(points), opts.Window)
	if len(averages) == 0 {
		return []models.ForecastPoint{}
	}
	return constantProjection(models.MethodMovingAverage, averages[len(averages)-1], points, periods)
}

// exponentialSmoothingDirect computes the full EMA slice and projects the
// final smoothed level.
type exponentialSmoothingDirect struct{}

func (exponentialSmoothingDirect) Name() string { return models.MethodExponentialSmoothing }

func (exponentialSmoothingDirect) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 {
		return []models.ForecastPoint{}
	}
	ema := stats.ExponentialMovingAverage(series.Values(points), opts.Alpha)
	if len(ema) == 0 {
		return []models.ForecastPoint{}
	}
	return constantProjection(models.MethodExponentialSmoothing, ema[len(ema)-1], points, periods)
}

// weightedAverageDirect blends the most recent points with most-recent-first
// weights and projects the blend.
type weightedAverageDirect struct{}

func (weightedAverageDirect) Name() string { return models.MethodWeightedAverage }

func (weightedAverageDirect) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || len(points) == 0 {
		return []models.ForecastPoint{}
	}
	value := weightedBlend(series.Values(points), opts.Weights)
	return constantProjection(models.MethodWeightedAverage, value, points, periods)
}

// weightedBlend applies weights most-recent-first: weights[0] multiplies the
// newest value. When fewer points exist than weights, the weight list is
// truncated from its older end and re-normalized to sum to 1. A zero weight
// total resolves to 0.
func weightedBlend(values, weights []float64) float64 {
	n := len(values)
	w := weights
	if n < len(w) {
		w = w[:n]
	}
	var sum, total float64
	for i, wt := range w {
		sum += wt * values[n-1-i]
		total += wt
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
