package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/salespipe/forecast-engine/internal/cache"
	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
)

// Config carries the engine tunables. Zero values select the defaults.
type Config struct {
	LargeThreshold      int
	VeryLargeThreshold  int
	RegressionCacheSize int
	MaxWorkers          int
}

// Engine is the forecasting engine: pure in-memory computation, no I/O. One
// instance owns the regression cache, the dispatcher, and the executor, and
// is safe for concurrent use because no forecaster mutates shared state.
type Engine struct {
	logger     *logrus.Logger
	cache      *cache.RegressionCache
	dispatcher *Dispatcher
	executor   *Executor
	direct     map[string]Forecaster
	streaming  map[string]Forecaster
}

// New builds an engine from config. The direct and streaming forecaster sets
// are registered here; the dispatcher only ever selects between them.
func New(cfg Config, logger *logrus.Logger) (*Engine, error) {
	if logger == nil {
		logger = logrus.New()
	}
	regressionCache, err := cache.NewRegressionCache(cfg.RegressionCacheSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		logger:     logger,
		cache:      regressionCache,
		dispatcher: NewDispatcher(cfg.LargeThreshold, cfg.VeryLargeThreshold),
		executor:   NewExecutor(logger, cfg.MaxWorkers),
	}

	regression := linearRegressionForecaster{cache: regressionCache}
	e.direct = map[string]Forecaster{
		models.MethodMovingAverage:        movingAverageDirect{},
		models.MethodExponentialSmoothing: exponentialSmoothingDirect{},
		models.MethodWeightedAverage:      weightedAverageDirect{},
		models.MethodLinearRegression:     regression,
		models.MethodSeasonal:             seasonalForecaster{},
		models.MethodARIMA:                arimaForecaster{},
	}
	e.streaming = map[string]Forecaster{
		models.MethodMovingAverage:        movingAverageStreaming{},
		models.MethodExponentialSmoothing: exponentialSmoothingStreaming{},
		models.MethodWeightedAverage:      weightedAverageStreaming{},
	}
	return e, nil
}

// CacheStats exposes the regression cache counters for host diagnostics.
func (e *Engine) CacheStats() cache.CacheStats {
	return e.cache.Stats()
}

// Forecast runs a single method over raw records. Unknown methods and
// series below the method's minimum return an empty slice, never an error;
// the caller decides what "not enough data" means.
func (e *Engine) Forecast(records []series.Record, method string, periods int, opts Options) []models.ForecastPoint {
	opts = opts.withDefaults()
	points := series.Prepare(records, opts.ValueKey, opts.DateKey)
	return e.runMethod(method, points, periods, opts)
}

// EnsembleForecast combines the configured methods into one forecast with
// per-method transparency fields.
func (e *Engine) EnsembleForecast(records []series.Record, periods int, opts Options) []models.ForecastPoint {
	opts = opts.withDefaults()
	points := series.Prepare(records, opts.ValueKey, opts.DateKey)
	return e.ensembleForecast(points, periods, opts)
}

// ForecastWithConfidenceIntervals wraps a forecast (default ensemble) with
// backtested uncertainty bounds. Unexpected failures are converted to an
// unsuccessful envelope instead of propagating.
func (e *Engine) ForecastWithConfidenceIntervals(records []series.Record, periods int, opts Options) (result models.ConfidenceResult) {
	opts = opts.withDefaults()
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", fmt.Sprint(r)).Error("Confidence interval estimation failed")
			result = models.ConfidenceResult{
				Success: false,
				Method:  opts.Method,
				Error:   fmt.Sprintf("confidence interval estimation failed: %v", r),
			}
		}
	}()
	points := series.Prepare(records, opts.ValueKey, opts.DateKey)
	return e.forecastWithConfidence(points, periods, opts)
}

// ScenarioForecast applies named perturbations and re-runs forecasting per
// scenario. With no scenarios supplied, the optimistic/realistic/pessimistic
// triad is used.
func (e *Engine) ScenarioForecast(records []series.Record, periods int, scenarios []models.Scenario, opts Options) (result models.ScenarioResult) {
	opts = opts.withDefaults()
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", fmt.Sprint(r)).Error("Scenario forecasting failed")
			result = models.ScenarioResult{
				Success: false,
				Error:   fmt.Sprintf("scenario forecasting failed: %v", r),
			}
		}
	}()
	points := series.Prepare(records, opts.ValueKey, opts.DateKey)
	return e.scenarioForecast(points, periods, scenarios, opts)
}

// GenerateReport wraps a forecast in a host-facing envelope with a run ID
// and model metadata. When an advanced method has too little history it
// falls back to the moving-average family rather than returning nothing.
func (e *Engine) GenerateReport(records []series.Record, method string, periods int, opts Options) models.Report {
	opts = opts.withDefaults()
	points := series.Prepare(records, opts.ValueKey, opts.DateKey)

	usedMethod := method
	forecastPoints := e.runMethod(method, points, periods, opts)
	if len(forecastPoints) == 0 && method != models.MethodMovingAverage {
		e.logger.WithFields(logrus.Fields{
			"method": method,
			"points": len(points),
		}).Info("Falling back to moving average forecast")
		usedMethod = models.MethodMovingAverage
		forecastPoints = e.runMethod(usedMethod, points, periods, opts)
	}

	metadata := map[string]interface{}{
		"model_type":        usedMethod,
		"data_points_count": len(forecastPoints),
	}
	if len(forecastPoints) > 0 && forecastPoints[0].Fields != nil {
		if slope, ok := forecastPoints[0].Fields["slope"]; ok {
			metadata["slope"] = slope
			metadata["intercept"] = forecastPoints[0].Fields["intercept"]
		}
	}

	now := time.Now()
	return models.Report{
		ID:        reportID(now),
		CreatedAt: now,
		Method:    usedMethod,
		Points:    forecastPoints,
		Metadata:  metadata,
	}
}

// runMethod dispatches one prepared-series forecast to the implementation
// the dispatcher selects for the dataset size.
func (e *Engine) runMethod(method string, points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if method == models.MethodEnsemble {
		return e.ensembleForecast(points, periods, opts)
	}
	f, ok := e.dispatcher.Select(method, len(points), e.direct, e.streaming)
	if !ok {
		e.logger.WithField("method", method).Warn("Unknown forecast method requested")
		return []models.ForecastPoint{}
	}
	return f.Forecast(points, periods, opts)
}

func reportID(now time.Time) string {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("forecast-%s-%s", now.Format("20060102"), short)
}
