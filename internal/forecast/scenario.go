package forecast

import (
	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
)

func float64Ptr(v float64) *float64 { return &v }

// defaultScenarios is the documented triad applied when the caller supplies
// no scenarios of their own.
func defaultScenarios() []models.Scenario {
	return []models.Scenario{
		{
			Name:          "optimistic",
			Description:   "Recent periods grow by 20%",
			Modifications: &models.ScenarioModifications{GrowthRate: float64Ptr(0.2)},
		},
		{
			Name:        "realistic",
			Description: "History unchanged",
		},
		{
			Name:          "pessimistic",
			Description:   "Recent periods shrink by 20%",
			Modifications: &models.ScenarioModifications{GrowthRate: float64Ptr(-0.2)},
		},
	}
}

// scenarioForecast applies each named perturbation to its own copy of the
// series and re-runs forecasting. Scenarios are fully independent: no
// scenario's modifications can leak into another scenario or into the
// caller's input.
func (e *Engine) scenarioForecast(points []models.DataPoint, periods int, scenarios []models.Scenario, opts Options) models.ScenarioResult {
	if len(points) == 0 {
		return models.ScenarioResult{Success: false, Error: "no historical data provided"}
	}
	if len(scenarios) == 0 {
		scenarios = defaultScenarios()
	}

	result := models.ScenarioResult{Success: true}
	for _, sc := range scenarios {
		modified := applyScenario(points, sc)
		method := sc.Method
		if method == "" {
			method = models.MethodEnsemble
		}
		result.Scenarios = append(result.Scenarios, models.ScenarioForecast{
			Name:        sc.Name,
			Description: sc.Description,
			Forecast:    e.runMethod(method, modified, periods, opts),
		})
	}

	result.BaseForecast = e.runMethod(models.MethodEnsemble, points, periods, opts)
	return result
}

// applyScenario clones the series and applies the scenario's modifications:
// growth-rate scaling of the most recent period points, then explicit value
// overrides (negative indices count from the end). Out-of-range overrides
// are ignored.
func applyScenario(points []models.DataPoint, sc models.Scenario) []models.DataPoint {
	out := series.Clone(points)
	mods := sc.Modifications
	if mods == nil {
		return out
	}

	if mods.GrowthRate != nil {
		period := mods.Period
		if period <= 0 {
			period = DefaultScenarioPeriod
		}
		start := len(out) - period
		if start < 0 {
			start = 0
		}
		factor := 1 + *mods.GrowthRate
		for i := start; i < len(out); i++ {
			out[i].Value *= factor
		}
	}

	for _, override := range mods.Values {
		idx := override.Index
		if idx < 0 {
			idx += len(out)
		}
		if idx < 0 || idx >= len(out) {
			continue
		}
		out[idx].Value = override.Value
	}
	return out
}
