// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("GRIDIRON_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// The rating and backtest sections fall back to the calibrated defaults when
// the file omits them, so the engine can run with a minimal config.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRIDIRON_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("features.synthetic_data_enabled", true)

	ratingDefaults := DefaultRatingConfig()
	v.SetDefault("rating.recency_decay", ratingDefaults.RecencyDecay)
	v.SetDefault("rating.home_field_advantage", ratingDefaults.HomeFieldAdvantage)
	v.SetDefault("rating.opponent_adj_iterations", ratingDefaults.OpponentAdjIterations)
	v.SetDefault("rating.prior_full_weight_week", ratingDefaults.PriorFullWeightWeek)
	v.SetDefault("rating.prior_zero_weight_week", ratingDefaults.PriorZeroWeightWeek)
	v.SetDefault("rating.prior_regression_factor", ratingDefaults.PriorRegressionFactor)
	v.SetDefault("rating.turnover_regression_factor", ratingDefaults.TurnoverRegressionFactor)
	v.SetDefault("rating.turnover_point_value", ratingDefaults.TurnoverPointValue)
	v.SetDefault("rating.plays_per_game", ratingDefaults.PlaysPerGame)
	v.SetDefault("rating.weight_off_epa", ratingDefaults.WeightOffEPA)
	v.SetDefault("rating.weight_def_epa", ratingDefaults.WeightDefEPA)
	v.SetDefault("rating.weight_turnover_adj", ratingDefaults.WeightTurnoverAdj)
	v.SetDefault("rating.weight_special_teams", ratingDefaults.WeightSpecialTeams)
	v.SetDefault("rating.seasons", ratingDefaults.Seasons)

	backtestDefaults := DefaultBacktestConfig()
	v.SetDefault("backtest.min_edge_threshold", backtestDefaults.MinEdgeThreshold)
	v.SetDefault("backtest.use_trend_filter", backtestDefaults.UseTrendFilter)
	v.SetDefault("backtest.trend_decline_threshold", backtestDefaults.TrendDeclineThreshold)
	v.SetDefault("backtest.output_path", backtestDefaults.OutputPath)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
