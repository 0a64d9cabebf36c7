// Package main provides the power-ratings CLI: rating tables, spread
// predictions, and QB situation reports.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/gamestore"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/qb"
	"github.com/yourusername/gridiron-edge/internal/rating"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	season     int
	week       int
	synthetic  bool

	logger   *logrus.Logger
	cfg      *config.Config
	engine   *rating.Engine
	adjuster *qb.Adjuster
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVar(&season, "season", 2024, "Season to rate")
	rootCmd.PersistentFlags().IntVar(&week, "week", 0, "Rate through this week (0 = latest played)")
	rootCmd.PersistentFlags().BoolVar(&synthetic, "synthetic", false, "Use the synthetic data source")

	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(qbCmd)
}

var rootCmd = &cobra.Command{
	Use:     "ratings",
	Short:   "NFL power ratings and spread predictions",
	Long:    `Computes opponent-adjusted power ratings from game-level EPA data and predicts point spreads.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return setupEngine()
	},
	Run: func(cmd *cobra.Command, args []string) {
		displayTable()
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the power rating table",
	Run: func(cmd *cobra.Command, args []string) {
		displayTable()
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict HOME AWAY",
	Short: "Predict the spread for a matchup",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		displayPrediction(args[0], args[1])
	},
}

var qbCmd = &cobra.Command{
	Use:   "qb",
	Short: "Report QB situations and active adjustments",
	Run: func(cmd *cobra.Command, args []string) {
		displayQBReport()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			return err
		}
	}
	return nil
}

func setupEngine() error {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	games, passLogs, err := loadData()
	if err != nil {
		return err
	}

	engine, err = rating.NewEngine(cfg.Rating, gamestore.New(games), logger)
	if err != nil {
		return fmt.Errorf("failed to create rating engine: %w", err)
	}

	if len(passLogs) > 0 {
		adjuster = qb.NewAdjuster(passLogs, logger)
		if cfg.Features.QBAdjustmentEnabled {
			engine.SetAdjuster(adjuster)
		}
	}

	if week == 0 {
		week = engine.Store().MaxWeek(season)
	}
	return nil
}

func loadData() ([]models.Game, []models.PassLog, error) {
	ctx := context.Background()

	if synthetic || cfg.Features.SyntheticDataEnabled {
		source := datasource.NewSyntheticSource(datasource.DefaultSyntheticSeed, logger)
		games, err := source.FetchGames(ctx, season)
		if err != nil {
			return nil, nil, err
		}
		passLogs, err := source.FetchPassLogs(ctx, season)
		if err != nil {
			return nil, nil, err
		}
		return games, passLogs, nil
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return nil, nil, err
	}
	games, err := repos.Game.GetBySeason(ctx, season)
	if err != nil {
		return nil, nil, err
	}
	passLogs, err := repos.PassLog.GetBySeason(ctx, season)
	if err != nil {
		return nil, nil, err
	}
	return games, passLogs, nil
}

func displayTable() {
	powers := engine.ComputeRatings(season, week)
	details := engine.DetailedRatings(season, week)

	type row struct {
		team  string
		power float64
	}
	rows := make([]row, 0, len(powers))
	for team, power := range powers {
		rows = append(rows, row{team: team, power: power})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].power > rows[j].power })

	fmt.Printf("\nPower Ratings - %d through week %d\n", season, week)
	fmt.Printf("%-5s %-4s %8s %9s %9s %6s\n", "Rank", "Team", "Power", "Off EPA", "Def EPA", "GP")
	fmt.Println("-------------------------------------------------")
	for i, r := range rows {
		d := details[r.team]
		tier := ""
		switch {
		case i < 4:
			tier = " *"
		case i >= len(rows)-4:
			tier = " !"
		}
		fmt.Printf("%-5d %-4s %+8.2f %+9.3f %+9.3f %6d%s\n",
			i+1, r.team, r.power, d.OffEPA, d.DefEPA, d.GamesPlayed, tier)
	}
	fmt.Println("\n* top tier   ! bottom tier")
}

func displayPrediction(home, away string) {
	spread, ok := engine.PredictSpread(home, away, season, week)
	if !ok {
		fmt.Printf("No rating available for %s vs %s in %d week %d\n", home, away, season, week)
		os.Exit(1)
	}

	fmt.Printf("\n%s vs %s (%d, ratings through week %d)\n", away, home, season, week)
	if spread > 0 {
		fmt.Printf("Prediction: %s -%.1f\n", home, spread)
	} else if spread < 0 {
		fmt.Printf("Prediction: %s -%.1f\n", away, -spread)
	} else {
		fmt.Println("Prediction: pick'em")
	}
}

func displayQBReport() {
	if adjuster == nil {
		fmt.Println("No pass logs loaded; QB report unavailable")
		return
	}

	fmt.Printf("\nQB Situations - %d through week %d\n", season, week)
	changes := 0
	for _, team := range engine.Store().Teams(season) {
		status := adjuster.StatusFor(team, season, week)
		if !status.Changed {
			continue
		}
		changes++
		direction := "downgrade"
		if status.Adjustment > 0 {
			direction = "upgrade"
		}
		fmt.Printf("  %s: %s -> %s  EPA %+.3f -> %+.3f  adjustment %+.4f (%s)\n",
			team, status.PrimaryQB, status.CurrentQB,
			status.PrimaryEPA, status.CurrentEPA, status.Adjustment, direction)
	}
	if changes == 0 {
		fmt.Println("  No starter changes detected")
	}
}
