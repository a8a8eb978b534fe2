// Command forecast is the reference host for the forecasting engine: it
// loads a JSON array of historical records from a file, runs the requested
// operation, and prints the result as JSON. All I/O lives here; the engine
// itself is pure computation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/salespipe/forecast-engine/internal/config"
	"github.com/salespipe/forecast-engine/internal/forecast"
	"github.com/salespipe/forecast-engine/internal/logging"
	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to a JSON array of records (numbers or objects)")
		operation  = flag.String("op", "report", "operation: report, ensemble, confidence, scenario")
		method     = flag.String("method", models.MethodEnsemble, "forecast method for the report operation")
		periods    = flag.Int("periods", 6, "number of future periods to project")
		valueKey   = flag.String("value-key", series.DefaultValueKey, "record field holding the value")
		dateKey    = flag.String("date-key", series.DefaultDateKey, "record field holding the date")
		confidence = flag.Float64("confidence", 0, "confidence level for the confidence operation")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogLevel, cfg.Environment)

	if *inputPath == "" {
		logger.Fatal("missing required -input flag")
	}
	records, err := loadRecords(*inputPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load input records")
	}

	engine, err := forecast.New(forecast.Config{
		LargeThreshold:      cfg.Forecasting.LargeThreshold,
		VeryLargeThreshold:  cfg.Forecasting.VeryLargeThreshold,
		RegressionCacheSize: cfg.Forecasting.RegressionCacheSize,
		MaxWorkers:          cfg.Forecasting.MaxWorkers,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build forecast engine")
	}

	opts := forecast.Options{
		ValueKey:        *valueKey,
		DateKey:         *dateKey,
		Window:          cfg.Forecasting.DefaultWindow,
		Alpha:           cfg.Forecasting.DefaultAlpha,
		Seasonality:     cfg.Forecasting.DefaultSeasonality,
		ConfidenceLevel: *confidence,
		Method:          *method,
	}
	if opts.ConfidenceLevel == 0 {
		opts.ConfidenceLevel = cfg.Forecasting.ConfidenceLevel
	}

	var result interface{}
	switch *operation {
	case "report":
		result = engine.GenerateReport(records, *method, *periods, opts)
	case "ensemble":
		result = engine.EnsembleForecast(records, *periods, opts)
	case "confidence":
		result = engine.ForecastWithConfidenceIntervals(records, *periods, opts)
	case "scenario":
		result = engine.ScenarioForecast(records, *periods, nil, opts)
	default:
		logger.Fatalf("unknown operation: %s", *operation)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("Failed to encode result")
	}
	fmt.Println(string(out))
}

// loadRecords reads a JSON array whose elements are either bare numbers or
// keyed objects, preserving numeric text exactly for the engine's coercion.
func loadRecords(path string) ([]series.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	records := make([]series.Record, 0, len(raw))
	for _, item := range raw {
		switch t := item.(type) {
		case map[string]interface{}:
			records = append(records, series.Fields(t))
		default:
			records = append(records, series.Number(series.CoerceValue(t)))
		}
	}
	return records, nil
}
