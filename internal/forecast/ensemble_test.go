package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespipe/forecast-engine/internal/models"
)

// stubForecaster emits a fixed value sequence, one entry per period it can
// cover, so combination math can be asserted exactly.
type stubForecaster struct {
	name   string
	values []float64
}

func (s stubForecaster) Name() string { return s.name }

func (s stubForecaster) Forecast(points []models.DataPoint, periods int, opts Options) []models.ForecastPoint {
	n := periods
	if n > len(s.values) {
		n = len(s.values)
	}
	out := make([]models.ForecastPoint, n)
	for i := 0; i < n; i++ {
		out[i] = models.ForecastPoint{Value: s.values[i], IsForecast: true, Method: s.name}
	}
	return out
}

// panicForecaster exercises the executor's recovery path.
type panicForecaster struct{}

func (panicForecaster) Name() string { return "panic" }

func (panicForecaster) Forecast([]models.DataPoint, int, Options) []models.ForecastPoint {
	panic("boom")
}

func TestEnsembleWeightedCombination(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.direct["stub_a"] = stubForecaster{name: "stub_a", values: []float64{100, 100}}
	e.direct["stub_b"] = stubForecaster{name: "stub_b", values: []float64{200}}

	opts := Options{Methods: []string{"stub_a", "stub_b"}}
	got := e.ensembleForecast(makeSeries(1, 2, 3), 2, opts)
	require.Len(t, got, 2)

	// Both methods cover slot 0; slot 1 averages only the method that
	// produced a value for it.
	assert.InDelta(t, 150.0, got[0].Value, 1e-12)
	assert.InDelta(t, 100.0, got[1].Value, 1e-12)
	assert.Equal(t, models.MethodEnsemble, got[0].Method)

	assert.Equal(t, 100.0, got[0].Fields["stub_a_forecast"])
	assert.Equal(t, 200.0, got[0].Fields["stub_b_forecast"])
	_, present := got[1].Fields["stub_b_forecast"]
	assert.False(t, present)
}

func TestEnsembleCustomMethodWeights(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.direct["stub_a"] = stubForecaster{name: "stub_a", values: []float64{100}}
	e.direct["stub_b"] = stubForecaster{name: "stub_b", values: []float64{200}}

	opts := Options{
		Methods:       []string{"stub_a", "stub_b"},
		MethodWeights: map[string]float64{"stub_a": 3, "stub_b": 1},
	}
	got := e.ensembleForecast(makeSeries(1, 2, 3), 1, opts)
	require.Len(t, got, 1)
	assert.InDelta(t, 125.0, got[0].Value, 1e-12) // (3*100 + 1*200) / 4
}

func TestEnsembleZeroTotalWeight(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.direct["stub_a"] = stubForecaster{name: "stub_a", values: []float64{100}}

	opts := Options{
		Methods:       []string{"stub_a"},
		MethodWeights: map[string]float64{"stub_a": 0},
	}
	got := e.ensembleForecast(makeSeries(1, 2, 3), 1, opts)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Value)
}

func TestEnsembleExcludesItself(t *testing.T) {
	e := newTestEngine(t, Config{})
	got := e.ensembleForecast(makeSeries(1, 2, 3), 2, Options{Methods: []string{models.MethodEnsemble}})
	assert.Empty(t, got)
}

func TestEnsembleEmptyInput(t *testing.T) {
	e := newTestEngine(t, Config{})
	assert.Empty(t, e.ensembleForecast(nil, 2, Options{}.withDefaults()))
	assert.Empty(t, e.ensembleForecast(makeSeries(1, 2), 0, Options{}.withDefaults()))
}

func TestEnsembleFallsBackToSequentialOnPanic(t *testing.T) {
	// Tiny thresholds force the concurrent path; the panicking method makes
	// concurrent dispatch fail, and the sequential fallback still delivers
	// the healthy method's contribution.
	e := newTestEngine(t, Config{LargeThreshold: 2, VeryLargeThreshold: 4})
	e.direct["stub_a"] = stubForecaster{name: "stub_a", values: []float64{100}}
	e.direct["panic"] = panicForecaster{}
	e.streaming["stub_a"] = e.direct["stub_a"]
	e.streaming["panic"] = e.direct["panic"]

	opts := Options{Methods: []string{"stub_a", "panic"}}
	got := e.ensembleForecast(makeSeries(1, 2, 3, 4, 5), 1, opts)
	require.Len(t, got, 1)
	assert.InDelta(t, 100.0, got[0].Value, 1e-12)
}

func TestEnsembleParallelMatchesSequential(t *testing.T) {
	points := randomSeries(100, 42)
	opts := Options{}.withDefaults()

	sequential := newTestEngine(t, Config{})
	parallel := newTestEngine(t, Config{LargeThreshold: 1, VeryLargeThreshold: 1})

	a := sequential.ensembleForecast(points, 4, opts)
	b := parallel.ensembleForecast(points, 4, opts)
	require.Len(t, b, len(a))
	for i := range a {
		assert.InDelta(t, a[i].Value, b[i].Value, 1e-6)
	}
}
