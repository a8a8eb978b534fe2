package forecast

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/salespipe/forecast-engine/internal/models"
)

// ensembleForecast runs the requested methods and merges their outputs into
// one forecast per period via weighted average. Methods that produced no
// value for a slot are excluded from that slot only; a zero total weight for
// a slot resolves to 0 (documented degenerate case, not an error). Each
// contributing method's raw value is preserved as a {method}_forecast field.
func (e *Engine) ensembleForecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || len(points) == 0 {
		return []models.ForecastPoint{}
	}

	methods := make([]string, 0, len(opts.Methods))
	for _, m := range opts.Methods {
		if m == models.MethodEnsemble {
			continue
		}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return []models.ForecastPoint{}
	}

	results := e.runMethods(points, periods, opts, methods)

	ts := forecastTimestamps(points, periods)
	out := make([]models.ForecastPoint, periods)
	for slot := 0; slot < periods; slot++ {
		var weightedSum, totalWeight float64
		fields := make(map[string]float64)
		for mi, method := range methods {
			forecastPoints := results[mi]
			if slot >= len(forecastPoints) {
				continue
			}
			weight := e.methodWeight(method, opts)
			value := forecastPoints[slot].Value
			weightedSum += value * weight
			totalWeight += weight
			fields[method+"_forecast"] = value
		}
		value := 0.0
		if totalWeight != 0 {
			value = weightedSum / totalWeight
		}
		out[slot] = models.ForecastPoint{
			Value:      value,
			IsForecast: true,
			Method:     models.MethodEnsemble,
			Timestamp:  ts[slot],
			Fields:     fields,
		}
	}
	return out
}

// runMethods executes each requested forecaster once. Very large datasets go
// through the concurrent executor; any dispatch failure falls back to
// running the same closures sequentially rather than failing the forecast.
func (e *Engine) runMethods(points []models.DataPoint, periods int, opts Options, methods []string) [][]models.ForecastPoint {
	results := make([][]models.ForecastPoint, len(methods))
	tasks := make([]func() error, len(methods))
	for i, method := range methods {
		i, method := i, method
		tasks[i] = func() error {
			results[i] = e.runMethod(method, points, periods, opts)
			return nil
		}
	}

	if e.dispatcher.Strategy(len(points)) == StrategyParallel {
		if err := e.executor.RunAll(context.Background(), tasks); err == nil {
			return results
		} else {
			e.logger.WithFields(logrus.Fields{
				"methods": methods,
				"points":  len(points),
			}).WithError(err).Warn("Concurrent forecast dispatch failed, falling back to sequential execution")
		}
	}

	if err := e.executor.RunSequential(tasks); err != nil {
		e.logger.WithError(err).Error("Sequential forecast execution failed")
	}
	return results
}

func (e *Engine) methodWeight(method string, opts Options) float64 {
	if opts.MethodWeights != nil {
		if w, ok := opts.MethodWeights[method]; ok {
			return w
		}
	}
	return 1
}
