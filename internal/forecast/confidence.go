package forecast

import (
	"fmt"

	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
	"github.com/salespipe/forecast-engine/internal/stats"
)

// confidenceWindowCap bounds the backtest window regardless of history size.
const confidenceWindowCap = 6

// zScores maps confidence levels to their normal z values. Unrecognized
// levels use the 0.95 entry.
var zScores = map[float64]float64{
	0.80: 1.28,
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

func zScore(level float64) float64 {
	if z, ok := zScores[level]; ok {
		return z
	}
	return zScores[0.95]
}

// forecastWithConfidence wraps a base forecast with uncertainty bounds
// estimated from a sliding-window backtest over history: at each position
// the next point is predicted with the same method family, and the
// population standard deviation of the residuals sets the margin of error.
func (e *Engine) forecastWithConfidence(points []models.DataPoint, periods int, opts Options) models.ConfidenceResult {
	method := opts.Method
	if method == "" {
		method = models.MethodEnsemble
	}

	base := e.runMethod(method, points, periods, opts)
	if len(base) == 0 {
		return models.ConfidenceResult{
			Success:         false,
			Method:          method,
			ConfidenceLevel: opts.ConfidenceLevel,
			Error:           fmt.Sprintf("insufficient data for %s forecast: %d points", method, len(points)),
		}
	}

	window := len(points) / 3
	if window > confidenceWindowCap {
		window = confidenceWindowCap
	}
	if window < 2 {
		// Not enough history to backtest; the point forecast stands alone.
		return models.ConfidenceResult{
			Success:         true,
			Forecast:        base,
			Intervals:       nil,
			Method:          method,
			ConfidenceLevel: opts.ConfidenceLevel,
			Message:         "insufficient history to estimate confidence intervals",
		}
	}

	values := series.Values(points)
	residuals := make([]float64, 0, len(values)-window)
	for i := window; i < len(values); i++ {
		predicted := predictNext(values[i-window:i], method, opts)
		residuals = append(residuals, values[i]-predicted)
	}

	stdDev := stats.PopulationStdDev(residuals)
	margin := zScore(opts.ConfidenceLevel) * stdDev

	intervals := make([]models.Interval, len(base))
	for i, fp := range base {
		m := margin
		if opts.widen() {
			m *= 1 + float64(i)*0.1
		}
		lower := fp.Value - m
		if lower < 0 {
			lower = 0
		}
		intervals[i] = models.Interval{
			Lower:         lower,
			Upper:         fp.Value + m,
			MarginOfError: m,
		}
	}

	return models.ConfidenceResult{
		Success:         true,
		Forecast:        base,
		Intervals:       intervals,
		Method:          method,
		ConfidenceLevel: opts.ConfidenceLevel,
		MarginOfError:   margin,
	}
}

// predictNext produces a one-step-ahead backtest prediction from a window,
// using the estimator family of the requested method.
func predictNext(window []float64, method string, opts Options) float64 {
	switch method {
	case models.MethodExponentialSmoothing:
		ema := stats.ExponentialMovingAverage(window, opts.Alpha)
		return ema[len(ema)-1]
	case models.MethodLinearRegression, models.MethodSeasonal, models.MethodARIMA:
		fit := stats.LinearRegression(stats.IndexAxis(len(window)), window, false)
		return fit.Slope*float64(len(window)) + fit.Intercept
	default:
		// Moving average, weighted average and ensemble backtest with the
		// trailing mean.
		return stats.Mean(window)
	}
}
