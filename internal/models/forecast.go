package models

import "time"

// Method names accepted by the forecasting engine.
const (
	MethodMovingAverage        = "moving_average"
	MethodExponentialSmoothing = "exponential_smoothing"
	MethodWeightedAverage      = "weighted_average"
	MethodLinearRegression     = "linear_regression"
	MethodSeasonal             = "seasonal"
	MethodARIMA                = "arima"
	MethodEnsemble             = "ensemble"
)

// DataPoint is one historical observation. A zero Timestamp means the source
// record carried no usable date; ordering then falls back to input order.
type DataPoint struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// HasTimestamp reports whether the point carries a resolved date.
func (p DataPoint) HasTimestamp() bool {
	return !p.Timestamp.IsZero()
}

// ForecastPoint is one projected future period. Forecasters are the only
// producers; downstream stages (ensemble, confidence intervals) copy points
// instead of mutating them.
type ForecastPoint struct {
	Value      float64            `json:"value"`
	IsForecast bool               `json:"is_forecast"`
	Method     string             `json:"method"`
	Timestamp  time.Time          `json:"timestamp,omitempty"`
	Fields     map[string]float64 `json:"fields,omitempty"`
}

// Clone returns a deep copy, including the method-specific fields map.
func (p ForecastPoint) Clone() ForecastPoint {
	out := p
	if p.Fields != nil {
		out.Fields = make(map[string]float64, len(p.Fields))
		for k, v := range p.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// Interval is the confidence band for one forecast period. Lower is floored
// at zero because forecast quantities are assumed non-negative.
type Interval struct {
	Lower         float64 `json:"lower"`
	Upper         float64 `json:"upper"`
	MarginOfError float64 `json:"margin_of_error"`
}

// ConfidenceResult is the envelope returned by the confidence-interval
// estimator. Intervals is nil when history is too short to backtest; Message
// explains why without failing the call.
type ConfidenceResult struct {
	Success         bool            `json:"success"`
	Forecast        []ForecastPoint `json:"forecast"`
	Intervals       []Interval      `json:"confidence_intervals,omitempty"`
	Method          string          `json:"method"`
	ConfidenceLevel float64         `json:"confidence_level"`
	MarginOfError   float64         `json:"margin_of_error,omitempty"`
	Message         string          `json:"message,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// ValueOverride replaces the value at Index in a scenario's cloned series.
// Negative indices count back from the end of the series.
type ValueOverride struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// ScenarioModifications describes the perturbations applied to a scenario's
// series copy before forecasting.
type ScenarioModifications struct {
	// GrowthRate scales the most recent Period points by (1 + GrowthRate).
	GrowthRate *float64        `json:"growth_rate,omitempty"`
	Period     int             `json:"period,omitempty"`
	Values     []ValueOverride `json:"values,omitempty"`
}

// Scenario is one named what-if projection.
type Scenario struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	Modifications *ScenarioModifications `json:"modifications,omitempty"`
	Method        string                 `json:"method,omitempty"`
}

// ScenarioForecast is the forecast produced for one scenario.
type ScenarioForecast struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Forecast    []ForecastPoint `json:"forecast"`
}

// ScenarioResult is the envelope returned by the scenario engine.
type ScenarioResult struct {
	Success      bool               `json:"success"`
	Scenarios    []ScenarioForecast `json:"scenarios,omitempty"`
	BaseForecast []ForecastPoint    `json:"base_forecast,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// Report wraps a forecast with run metadata for host applications.
type Report struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Method    string                 `json:"method"`
	Points    []ForecastPoint        `json:"data_points"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
