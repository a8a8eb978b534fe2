// Package forecast implements the forecasting engine: basic and advanced
// forecasters in direct and streaming forms, the ensemble combiner, the
// confidence-interval estimator, the scenario engine, and the size-adaptive
// dispatch layer that picks an implementation strategy per input size.
package forecast

import (
	"time"

	"github.com/salespipe/forecast-engine/internal/models"
)

// Default method parameters, applied when the caller leaves them zero.
const (
	DefaultWindow          = 3
	DefaultAlpha           = 0.3
	DefaultSeasonality     = 12
	DefaultConfidenceLevel = 0.95
	DefaultScenarioPeriod  = 6
)

// DefaultWeights is the most-recent-first weight vector for the weighted
// average forecaster.
var DefaultWeights = []float64{0.5, 0.3, 0.2}

// Options carries the per-call parameters shared by every engine operation.
// Field-name configuration (ValueKey/DateKey) is the engine's only
// configuration surface toward arbitrary record shapes.
type Options struct {
	ValueKey string `json:"value_key,omitempty"`
	DateKey  string `json:"date_key,omitempty"`

	// Basic forecasters.
	Window  int       `json:"window,omitempty"`
	Alpha   float64   `json:"alpha,omitempty"`
	Weights []float64 `json:"weights,omitempty"` // most-recent-first

	// Advanced forecasters.
	Seasonality int  `json:"seasonality,omitempty"`
	P           int  `json:"p,omitempty"`
	D           int  `json:"d,omitempty"`
	Q           int  `json:"q,omitempty"`
	UseDateAxis bool `json:"use_date_axis,omitempty"`

	// Ensemble.
	Methods       []string           `json:"methods,omitempty"`
	MethodWeights map[string]float64 `json:"method_weights,omitempty"`

	// Confidence intervals.
	Method          string  `json:"method,omitempty"`
	ConfidenceLevel float64 `json:"confidence_level,omitempty"`
	// WidenIntervals scales the margin per forecast period to reflect
	// growing uncertainty further out. Nil means enabled.
	WidenIntervals *bool `json:"widen_intervals,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if len(o.Weights) == 0 {
		o.Weights = DefaultWeights
	}
	if o.Seasonality <= 0 {
		o.Seasonality = DefaultSeasonality
	}
	if o.P == 0 && o.D == 0 && o.Q == 0 {
		o.P, o.D, o.Q = 1, 1, 1
	}
	if len(o.Methods) == 0 {
		o.Methods = []string{
			models.MethodMovingAverage,
			models.MethodExponentialSmoothing,
			models.MethodLinearRegression,
		}
	}
	if o.ConfidenceLevel == 0 {
		o.ConfidenceLevel = DefaultConfidenceLevel
	}
	return o
}

func (o Options) widen() bool {
	return o.WidenIntervals == nil || *o.WidenIntervals
}

// Forecaster projects future periods from a prepared series. Each method has
// a direct implementation and a streaming implementation conforming to the
// same contract, so correctness tests can run both against one fixture.
type Forecaster interface {
	Name() string
	// Forecast returns exactly periods points, or an empty slice when the
	// series is shorter than the method's minimum. It never errors and never
	// mutates points.
	Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint
}

// forecastTimestamps projects the forecast dates: one calendar month per
// period past the last dated point. Undated series yield zero timestamps.
func forecastTimestamps(points []models.DataPoint, periods int) []time.Time {
	out := make([]time.Time, periods)
	if len(points) == 0 {
		return out
	}
	last := points[len(points)-1].Timestamp
	if last.IsZero() {
		return out
	}
	for i := 0; i < periods; i++ {
		out[i] = last.AddDate(0, i+1, 0)
	}
	return out
}

// constantProjection emits the same value for every future period, which is
// the contract for all basic forecasters: no trend extrapolation, only the
// forecast date advances.
func constantProjection(method string, value float64, points []models.DataPoint, periods int) []models.ForecastPoint {
	ts := forecastTimestamps(points, periods)
	out := make([]models.ForecastPoint, periods)
	for i := range out {
		out[i] = models.ForecastPoint{
			Value:      value,
			IsForecast: true,
			Method:     method,
			Timestamp:  ts[i],
		}
	}
	return out
}
