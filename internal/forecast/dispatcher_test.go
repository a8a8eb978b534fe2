package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespipe/forecast-engine/internal/models"
)

func TestDispatcherStrategyThresholds(t *testing.T) {
	d := NewDispatcher(0, 0)

	assert.Equal(t, StrategyDirect, d.Strategy(0))
	assert.Equal(t, StrategyDirect, d.Strategy(DefaultLargeThreshold-1))
	assert.Equal(t, StrategyStreaming, d.Strategy(DefaultLargeThreshold))
	assert.Equal(t, StrategyStreaming, d.Strategy(DefaultVeryLargeThreshold-1))
	assert.Equal(t, StrategyParallel, d.Strategy(DefaultVeryLargeThreshold))
}

func TestDispatcherClampsInvertedThresholds(t *testing.T) {
	d := NewDispatcher(100, 50)
	assert.Equal(t, StrategyStreaming, d.Strategy(99))
	assert.Equal(t, StrategyParallel, d.Strategy(100))
}

func TestDispatcherSelect(t *testing.T) {
	e := newTestEngine(t, Config{})
	d := NewDispatcher(0, 0)

	small, ok := d.Select(models.MethodMovingAverage, 100, e.direct, e.streaming)
	require.True(t, ok)
	assert.IsType(t, movingAverageDirect{}, small)

	large, ok := d.Select(models.MethodMovingAverage, 6000, e.direct, e.streaming)
	require.True(t, ok)
	assert.IsType(t, movingAverageStreaming{}, large)

	// Methods without a streaming form keep their direct implementation at
	// any size.
	reg, ok := d.Select(models.MethodLinearRegression, 50000, e.direct, e.streaming)
	require.True(t, ok)
	assert.IsType(t, linearRegressionForecaster{}, reg)

	_, ok = d.Select("no_such_method", 10, e.direct, e.streaming)
	assert.False(t, ok)
}
