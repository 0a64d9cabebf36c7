// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Rating        RatingConfig        `mapstructure:"rating" validate:"required"`
	Backtest      BacktestConfig      `mapstructure:"backtest" validate:"required"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Features      FeaturesConfig      `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// RatingConfig parameterizes the power-rating engine. Every knob the
// engine consumes lives here; nothing is hard-coded in the rating path.
type RatingConfig struct {
	// RecencyDecay multiplies each game's weight per week of age.
	// 0.92 means the cutoff week counts 100%, the week before 92%, and so on.
	RecencyDecay float64 `mapstructure:"recency_decay" validate:"required,gt=0,lt=1"`

	// HomeFieldAdvantage in points, added to the home side of every
	// predicted spread. League-wide, not team-specific.
	HomeFieldAdvantage float64 `mapstructure:"home_field_advantage" validate:"gte=0"`

	// OpponentAdjIterations is the fixed iteration count for the
	// opponent-strength fixed point. Converges well before 10.
	OpponentAdjIterations int `mapstructure:"opponent_adj_iterations" validate:"required,gt=0"`

	// PriorFullWeightWeek / PriorZeroWeightWeek bound the linear ramp
	// that fades last season's ratings out of the blend.
	PriorFullWeightWeek int `mapstructure:"prior_full_weight_week" validate:"required,gte=1"`
	PriorZeroWeightWeek int `mapstructure:"prior_zero_weight_week" validate:"required,gte=2"`

	// PriorRegressionFactor shrinks prior-season components toward the
	// league mean before blending, reflecting offseason roster turnover.
	PriorRegressionFactor float64 `mapstructure:"prior_regression_factor" validate:"gte=0,lte=1"`

	// TurnoverRegressionFactor controls how far per-team turnover rates
	// are pulled toward the league average. 0 trusts actuals, 1 ignores them.
	TurnoverRegressionFactor float64 `mapstructure:"turnover_regression_factor" validate:"gte=0,lte=1"`

	// TurnoverPointValue is the point value of one net turnover.
	TurnoverPointValue float64 `mapstructure:"turnover_point_value" validate:"required,gt=0"`

	// PlaysPerGame scales per-play components to per-game points.
	PlaysPerGame float64 `mapstructure:"plays_per_game" validate:"required,gt=0"`

	// Component weights. Assumed to sum to 1 but not enforced.
	WeightOffEPA       float64 `mapstructure:"weight_off_epa" validate:"gte=0"`
	WeightDefEPA       float64 `mapstructure:"weight_def_epa" validate:"gte=0"`
	WeightTurnoverAdj  float64 `mapstructure:"weight_turnover_adj" validate:"gte=0"`
	WeightSpecialTeams float64 `mapstructure:"weight_special_teams" validate:"gte=0"`

	// Seasons to load and rate.
	Seasons []int `mapstructure:"seasons" validate:"required,min=1"`
}

// BacktestConfig represents edge detection and backtesting configuration
type BacktestConfig struct {
	// MinEdgeThreshold is the minimum model-vs-market gap, in points,
	// for a game to be flagged.
	MinEdgeThreshold float64 `mapstructure:"min_edge_threshold" validate:"required,gt=0"`

	// UseTrendFilter suppresses bets on teams whose power rating has
	// declined by more than TrendDeclineThreshold over the prior four
	// rating weeks.
	UseTrendFilter        bool    `mapstructure:"use_trend_filter"`
	TrendDeclineThreshold float64 `mapstructure:"trend_decline_threshold"`

	OutputPath string `mapstructure:"output_path" validate:"required"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	APIKey    string `mapstructure:"api_key"`
}

// ScheduleConfig represents data ingestion scheduling
type ScheduleConfig struct {
	WeeklySync     string  `mapstructure:"weekly_sync" validate:"required"`
	Backfill       string  `mapstructure:"backfill"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	QBAdjustmentEnabled  bool `mapstructure:"qb_adjustment_enabled"`
	SyntheticDataEnabled bool `mapstructure:"synthetic_data_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// DefaultRatingConfig returns the calibrated engine defaults.
func DefaultRatingConfig() RatingConfig {
	return RatingConfig{
		RecencyDecay:             0.92,
		HomeFieldAdvantage:       2.5,
		OpponentAdjIterations:    10,
		PriorFullWeightWeek:      1,
		PriorZeroWeightWeek:      9,
		PriorRegressionFactor:    0.67,
		TurnoverRegressionFactor: 0.50,
		TurnoverPointValue:       3.5,
		PlaysPerGame:             65,
		WeightOffEPA:             0.35,
		WeightDefEPA:             0.35,
		WeightTurnoverAdj:        0.20,
		WeightSpecialTeams:       0.10,
		Seasons:                  []int{2022, 2023, 2024},
	}
}

// DefaultBacktestConfig returns the default edge detection settings.
func DefaultBacktestConfig() BacktestConfig {
	return BacktestConfig{
		MinEdgeThreshold:      5.0,
		UseTrendFilter:        false,
		TrendDeclineThreshold: -0.5,
		OutputPath:            "./output/backtest_results.json",
	}
}
