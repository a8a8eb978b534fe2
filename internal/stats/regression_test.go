package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespipe/forecast-engine/internal/models"
)

func TestLinearRegressionExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	res := LinearRegression(x, y, true)
	assert.InDelta(t, 2.0, res.Slope, 1e-12)
	assert.InDelta(t, 1.0, res.Intercept, 1e-12)
	assert.InDelta(t, 1.0, res.R2, 1e-12)
}

func TestLinearRegressionDegenerateX(t *testing.T) {
	// All x identical: denominator is zero, slope resolves to 0 and the
	// intercept falls back to the mean of y.
	res := LinearRegression([]float64{5, 5, 5}, []float64{1, 2, 3}, false)
	assert.Zero(t, res.Slope)
	assert.InDelta(t, 2.0, res.Intercept, 1e-12)
}

func TestLinearRegressionConstantY(t *testing.T) {
	res := LinearRegression([]float64{0, 1, 2}, []float64{4, 4, 4}, true)
	assert.Zero(t, res.Slope)
	assert.InDelta(t, 4.0, res.Intercept, 1e-12)
	// Zero total variance: R² is defined as 0, not NaN.
	assert.Zero(t, res.R2)
}

func TestLinearRegressionEmptyOrMismatched(t *testing.T) {
	assert.Equal(t, RegressionResult{}, LinearRegression(nil, nil, false))
	assert.Equal(t, RegressionResult{}, LinearRegression([]float64{1}, []float64{1, 2}, false))
}

func TestIndexAxis(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2}, IndexAxis(3))
	assert.Empty(t, IndexAxis(0))
}

func TestDateAxisThirtyDayMonths(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []models.DataPoint{
		{Value: 1, Timestamp: base},
		{Value: 2, Timestamp: base.AddDate(0, 0, 45)},
		{Value: 3, Timestamp: base.AddDate(0, 0, 90)},
	}

	got := DateAxis(points)
	require.Len(t, got, 3)
	// Months are a flat 30 days: 45 days is still month 1, 90 days is month 3.
	assert.Equal(t, []float64{0, 1, 3}, got)
}

func TestDateAxisFallsBackToIndexWithoutTimestamps(t *testing.T) {
	points := []models.DataPoint{{Value: 1}, {Value: 2}, {Value: 3}}
	assert.Equal(t, []float64{0, 1, 2}, DateAxis(points))
}
