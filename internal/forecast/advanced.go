package forecast

import (
	"github.com/salespipe/forecast-engine/internal/cache"
	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
	"github.com/salespipe/forecast-engine/internal/stats"
)

// arimaMinPoints is the minimum history for the simplified ARIMA estimator.
const arimaMinPoints = 10

// linearRegressionForecaster fits OLS over the whole series and extrapolates
// the line, advancing x by 1 per future period. Coefficients are memoized in
// the engine-owned LRU cache.
type linearRegressionForecaster struct {
	cache *cache.RegressionCache
}

func (linearRegressionForecaster) Name() string { return models.MethodLinearRegression }

func (f linearRegressionForecaster) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || len(points) < 2 {
		return []models.ForecastPoint{}
	}
	values := series.Values(points)

	xMode := "index"
	x := stats.IndexAxis(len(points))
	if opts.UseDateAxis && points[0].HasTimestamp() {
		xMode = "months"
		x = stats.DateAxis(points)
	}

	var co cache.Coefficients
	if f.cache != nil {
		key := f.cache.Key(len(values), xMode, values[0], values[len(values)-1])
		if hit, ok := f.cache.Get(key); ok {
			co = hit
		} else {
			fit := stats.LinearRegression(x, values, false)
			co = cache.Coefficients{Slope: fit.Slope, Intercept: fit.Intercept}
			f.cache.Add(key, co)
		}
	} else {
		fit := stats.LinearRegression(x, values, false)
		co = cache.Coefficients{Slope: fit.Slope, Intercept: fit.Intercept}
	}

	ts := forecastTimestamps(points, periods)
	lastX := x[len(x)-1]
	out := make([]models.ForecastPoint, periods)
	for i := range out {
		xf := lastX + float64(i+1)
		out[i] = models.ForecastPoint{
			Value:      co.Slope*xf + co.Intercept,
			IsForecast: true,
			Method:     models.MethodLinearRegression,
			Timestamp:  ts[i],
			Fields: map[string]float64{
				"slope":     co.Slope,
				"intercept": co.Intercept,
			},
		}
	}
	return out
}

// seasonalForecaster deseasonalizes the series with frozen multiplicative
// indices, fits a linear trend on the deseasonalized values, then projects
// trend × seasonal index per future period.
type seasonalForecaster struct{}

func (seasonalForecaster) Name() string { return models.MethodSeasonal }

func (seasonalForecaster) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	m := opts.Seasonality
	if periods <= 0 || m <= 0 || len(points) < 2*m {
		return []models.ForecastPoint{}
	}
	values := series.Values(points)

	// The index vector is computed once and frozen before forecasting.
	indices := stats.SeasonalIndices(values, m)

	deseasonalized := make([]float64, len(values))
	for i, v := range values {
		idx := indices[i%m]
		if idx == 0 {
			deseasonalized[i] = 0
			continue
		}
		deseasonalized[i] = v / idx
	}

	fit := stats.LinearRegression(stats.IndexAxis(len(deseasonalized)), deseasonalized, false)

	ts := forecastTimestamps(points, periods)
	n := len(values)
	out := make([]models.ForecastPoint, periods)
	for i := range out {
		trendValue := fit.Slope*float64(n+i) + fit.Intercept
		seasonalIndex := indices[(n+i)%m]
		out[i] = models.ForecastPoint{
			Value:      trendValue * seasonalIndex,
			IsForecast: true,
			Method:     models.MethodSeasonal,
			Timestamp:  ts[i],
			Fields: map[string]float64{
				"trend_component": trendValue,
				"seasonal_index":  seasonalIndex,
			},
		}
	}
	return out
}

// arimaForecaster is the simplified ARIMA(p,d,q): d-fold differencing,
// single-pass autocorrelation-ratio AR and MA estimates, recursive forecast
// with zero future residuals, then d-fold reintegration. The estimators are
// deliberately not a Yule-Walker or least-squares solve; existing callers
// depend on these exact approximations.
type arimaForecaster struct{}

func (arimaForecaster) Name() string { return models.MethodARIMA }

func (arimaForecaster) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	if periods <= 0 || len(points) < arimaMinPoints {
		return []models.ForecastPoint{}
	}
	p, d, q := opts.P, opts.D, opts.Q
	if p < 0 {
		p = 0
	}
	if d < 0 {
		d = 0
	}
	if q < 0 {
		q = 0
	}

	// Difference d times, remembering the last value at each level for the
	// integration step.
	diff := series.Values(points)
	lastAtLevel := make([]float64, 0, d)
	for level := 0; level < d; level++ {
		if len(diff) < 2 {
			return []models.ForecastPoint{}
		}
		lastAtLevel = append(lastAtLevel, diff[len(diff)-1])
		diff = difference(diff)
	}

	arCoeffs := lagRatios(diff, p)
	residuals := arResiduals(diff, arCoeffs)
	maCoeffs := lagRatios(residuals, q)

	// Recursive forecast over the differenced scale. Future residuals are
	// assumed zero.
	lastDiffs := tail(diff, p)
	lastResiduals := tail(residuals, q)
	ts := forecastTimestamps(points, periods)
	out := make([]models.ForecastPoint, periods)
	for i := 0; i < periods; i++ {
		var next float64
		for lag := 1; lag <= len(arCoeffs); lag++ {
			if lag <= len(lastDiffs) {
				next += arCoeffs[lag-1] * lastDiffs[len(lastDiffs)-lag]
			}
		}
		for lag := 1; lag <= len(maCoeffs); lag++ {
			if lag <= len(lastResiduals) {
				next += maCoeffs[lag-1] * lastResiduals[len(lastResiduals)-lag]
			}
		}
		lastDiffs = append(lastDiffs, next)
		lastResiduals = append(lastResiduals, 0)

		// Integrate back through each differencing level.
		value := next
		for level := d - 1; level >= 0; level-- {
			value += lastAtLevel[level]
			lastAtLevel[level] = value
		}

		out[i] = models.ForecastPoint{
			Value:      value,
			IsForecast: true,
			Method:     models.MethodARIMA,
			Timestamp:  ts[i],
		}
	}
	return out
}

func difference(values []float64) []float64 {
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// lagRatios estimates one coefficient per lag 1..order as
// Σ(x[j]·x[j-lag]) / Σ(x[j-lag]²), with a zero denominator resolving to 0.
func lagRatios(values []float64, order int) []float64 {
	coeffs := make([]float64, order)
	for lag := 1; lag <= order; lag++ {
		var num, den float64
		for j := lag; j < len(values); j++ {
			num += values[j] * values[j-lag]
			den += values[j-lag] * values[j-lag]
		}
		if den != 0 {
			coeffs[lag-1] = num / den
		}
	}
	return coeffs
}

// arResiduals is the series minus its AR fit, defined from index len(coeffs).
func arResiduals(values, coeffs []float64) []float64 {
	p := len(coeffs)
	if len(values) <= p {
		return []float64{}
	}
	out := make([]float64, len(values)-p)
	for j := p; j < len(values); j++ {
		pred := 0.0
		for lag := 1; lag <= p; lag++ {
			pred += coeffs[lag-1] * values[j-lag]
		}
		out[j-p] = values[j] - pred
	}
	return out
}

func tail(values []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
