package forecast

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
)

// Streaming forecaster forms. Selected by the dispatcher for large inputs,
// they compute the same statistic as the direct forms with O(1) state per
// step and must stay numerically equivalent (floating-point rounding aside).

// movingAverageStreaming feeds the series through a channel-based SMA, which
// maintains a running window sum instead of re-averaging per index.
type movingAverageStreaming struct{}

func (movingAverageStreaming) Name() string { return models.MethodMovingAverage }

func (movingAverageStreaming) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || opts.Window <= 0 || len(points) < opts.Window {
		return []models.ForecastPoint{}
	}
	sma := trend.NewSmaWithPeriod[float64](opts.Window)
	averages := helper.ChanToSlice(sma.Compute(helper.SliceToChan(series.Values(points))))
	if len(averages) == 0 {
		return []models.ForecastPoint{}
	}
	return constantProjection(models.MethodMovingAverage, averages[len(averages)-1], points, periods)
}

// exponentialSmoothingStreaming carries only the current level through a
// single left-to-right pass instead of materializing the EMA slice.
type exponentialSmoothingStreaming struct{}

func (exponentialSmoothingStreaming) Name() string { return models.MethodExponentialSmoothing }

func (exponentialSmoothingStreaming) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || len(points) == 0 {
		return []models.ForecastPoint{}
	}
	level := points[0].Value
	for i := 1; i < len(points); i++ {
		level = opts.Alpha*points[i].Value + (1-opts.Alpha)*level
	}
	return constantProjection(models.MethodExponentialSmoothing, level, points, periods)
}

// weightedAverageStreaming reads only the tail the weights cover; the blend
// itself is shared with the direct form so there is one source of truth.
type weightedAverageStreaming struct{}

func (weightedAverageStreaming) Name() string { return models.MethodWeightedAverage }

func (weightedAverageStreaming) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || len(points) == 0 {
		return []models.ForecastPoint{}
	}
	tail := points
	if len(tail) > len(opts.Weights) {
		tail = tail[len(tail)-len(opts.Weights):]
	}
	value := weightedBlend(series.Values(tail), opts.Weights)
	return constantProjection(models.MethodWeightedAverage, value, points, periods)
}
