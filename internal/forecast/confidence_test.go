package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespipe/forecast-engine/internal/models"
)

func TestZScoreLookup(t *testing.T) {
	tests := []struct {
		level    float64
		expected float64
	}{
		{0.80, 1.28},
		{0.90, 1.645},
		{0.95, 1.96},
		{0.99, 2.576},
		{0.50, 1.96}, // unrecognized levels fall back to 0.95
		{0, 1.96},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, zScore(tt.level))
	}
}

func TestConfidenceIntervalsPerfectHistory(t *testing.T) {
	e := newTestEngine(t, Config{})
	points := makeSeries(100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100)
	opts := Options{Method: models.MethodMovingAverage}.withDefaults()

	got := e.forecastWithConfidence(points, 3, opts)
	require.True(t, got.Success)
	require.Len(t, got.Forecast, 3)
	require.Len(t, got.Intervals, 3)
	assert.Equal(t, 0.95, got.ConfidenceLevel)

	// Backtest residuals on a constant series are all zero, so the band
	// collapses onto the forecast.
	for i, iv := range got.Intervals {
		assert.InDelta(t, got.Forecast[i].Value, iv.Lower, 1e-12)
		assert.InDelta(t, got.Forecast[i].Value, iv.Upper, 1e-12)
		assert.Zero(t, iv.MarginOfError)
	}
}

func TestConfidenceIntervalsWiden(t *testing.T) {
	e := newTestEngine(t, Config{})
	points := makeSeries(10, 20, 10, 20, 10, 20, 10, 20, 10, 20, 10, 20)
	opts := Options{Method: models.MethodMovingAverage}.withDefaults()

	got := e.forecastWithConfidence(points, 3, opts)
	require.True(t, got.Success)
	require.Len(t, got.Intervals, 3)
	require.Positive(t, got.MarginOfError)

	// Widening is on by default: each period's margin grows by 10% of the
	// base margin.
	assert.InDelta(t, got.MarginOfError, got.Intervals[0].MarginOfError, 1e-12)
	assert.InDelta(t, got.MarginOfError*1.1, got.Intervals[1].MarginOfError, 1e-12)
	assert.InDelta(t, got.MarginOfError*1.2, got.Intervals[2].MarginOfError, 1e-12)

	disabled := false
	opts.WidenIntervals = &disabled
	flat := e.forecastWithConfidence(points, 3, opts)
	require.Len(t, flat.Intervals, 3)
	for _, iv := range flat.Intervals {
		assert.InDelta(t, flat.MarginOfError, iv.MarginOfError, 1e-12)
	}
}

func TestConfidenceLowerBoundFloorsAtZero(t *testing.T) {
	e := newTestEngine(t, Config{})
	points := makeSeries(0, 10, 0, 10, 0, 10, 0, 10, 0, 10, 0, 10)
	opts := Options{Method: models.MethodMovingAverage}.withDefaults()

	got := e.forecastWithConfidence(points, 2, opts)
	require.True(t, got.Success)
	require.NotEmpty(t, got.Intervals)
	floored := false
	for i, iv := range got.Intervals {
		assert.GreaterOrEqual(t, iv.Lower, 0.0)
		if got.Forecast[i].Value-iv.MarginOfError < 0 {
			floored = true
			assert.Zero(t, iv.Lower)
		}
	}
	assert.True(t, floored, "expected at least one interval clipped at zero")
}

func TestConfidenceShortHistoryKeepsForecast(t *testing.T) {
	e := newTestEngine(t, Config{})
	points := makeSeries(10, 12, 11, 13, 12) // window would be 1, below the backtest minimum
	opts := Options{Method: models.MethodMovingAverage}.withDefaults()

	got := e.forecastWithConfidence(points, 3, opts)
	assert.True(t, got.Success)
	assert.NotEmpty(t, got.Forecast)
	assert.Nil(t, got.Intervals)
	assert.NotEmpty(t, got.Message)
}

func TestConfidenceInsufficientData(t *testing.T) {
	e := newTestEngine(t, Config{})
	got := e.forecastWithConfidence(nil, 3, Options{Method: models.MethodMovingAverage}.withDefaults())
	assert.False(t, got.Success)
	assert.Contains(t, got.Error, "insufficient data")
	assert.Empty(t, got.Forecast)
}

func TestConfidenceDefaultsToEnsemble(t *testing.T) {
	e := newTestEngine(t, Config{})
	got := e.forecastWithConfidence(randomSeries(24, 3), 3, Options{}.withDefaults())
	require.True(t, got.Success)
	assert.Equal(t, models.MethodEnsemble, got.Method)
	require.Len(t, got.Forecast, 3)
	require.Len(t, got.Intervals, 3)
}
