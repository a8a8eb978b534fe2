package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/salespipe/forecast-engine/internal/utils"
)

type Config struct {
	Environment string            `mapstructure:"environment"`
	LogLevel    string            `mapstructure:"log_level"`
	Forecasting ForecastingConfig `mapstructure:"forecasting"`
	Scenario    ScenarioConfig    `mapstructure:"scenario"`
}

type ForecastingConfig struct {
	LargeThreshold      int     `mapstructure:"large_threshold"`
	VeryLargeThreshold  int     `mapstructure:"very_large_threshold"`
	RegressionCacheSize int     `mapstructure:"regression_cache_size"`
	MaxWorkers          int     `mapstructure:"max_workers"`
	DefaultWindow       int     `mapstructure:"default_window"`
	DefaultAlpha        float64 `mapstructure:"default_alpha"`
	DefaultSeasonality  int     `mapstructure:"default_seasonality"`
	ConfidenceLevel     float64 `mapstructure:"confidence_level"`
}

type ScenarioConfig struct {
	DefaultPeriod int     `mapstructure:"default_period"`
	DefaultDelta  float64 `mapstructure:"default_delta"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(config *Config) error {
	f := config.Forecasting
	if f.LargeThreshold <= 0 || f.VeryLargeThreshold <= 0 {
		return utils.NewValidationError("forecasting thresholds must be positive")
	}
	if f.VeryLargeThreshold < f.LargeThreshold {
		return utils.NewValidationErrorf(
			"very_large_threshold (%d) must be >= large_threshold (%d)",
			f.VeryLargeThreshold, f.LargeThreshold)
	}
	if f.RegressionCacheSize <= 0 {
		return utils.NewValidationError("regression_cache_size must be positive")
	}
	if f.DefaultWindow <= 0 {
		return utils.NewValidationErrorf("default_window must be positive, got %d", f.DefaultWindow)
	}
	return nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Forecasting
	viper.SetDefault("forecasting.large_threshold", 5000)
	viper.SetDefault("forecasting.very_large_threshold", 20000)
	viper.SetDefault("forecasting.regression_cache_size", 256)
	viper.SetDefault("forecasting.max_workers", 8)
	viper.SetDefault("forecasting.default_window", 3)
	viper.SetDefault("forecasting.default_alpha", 0.3)
	viper.SetDefault("forecasting.default_seasonality", 12)
	viper.SetDefault("forecasting.confidence_level", 0.95)

	// Scenario
	viper.SetDefault("scenario.default_period", 6)
	viper.SetDefault("scenario.default_delta", 0.2)
}
