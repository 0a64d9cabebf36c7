// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/backtest"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/gamestore"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/qb"
	"github.com/yourusername/gridiron-edge/internal/rating"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		season     = flag.Int("season", 0, "Season to backtest (0 = all configured seasons)")
		synthetic  = flag.Bool("synthetic", false, "Use the deterministic synthetic data source instead of the database")
		trend      = flag.Bool("trend-filter", false, "Enable the trend filter regardless of config")
		minEdge    = flag.Float64("min-edge", 0, "Override minimum edge threshold in points")
		csvOut     = flag.String("csv", "", "Optional path for a per-bet CSV export")
		showBets   = flag.Bool("bets", false, "Print every flagged bet")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	btCfg := cfg.Backtest
	if *trend {
		btCfg.UseTrendFilter = true
	}
	if *minEdge > 0 {
		btCfg.MinEdgeThreshold = *minEdge
	}

	seasons := cfg.Rating.Seasons
	if *season != 0 {
		seasons = []int{*season}
	}
	sort.Ints(seasons)

	games, passLogs := loadData(ctx, cfg, seasons, *synthetic, log)
	engine := buildEngine(cfg, games, passLogs, log)

	evaluator := backtest.NewEvaluator(btCfg, engine, log)
	edges := evaluator.RunSeasons(seasons)
	summary := backtest.Summarize(edges)

	if *showBets {
		fmt.Print(backtest.GenerateBetLog(edges))
	}
	fmt.Print(backtest.GenerateConsoleReport(edges, summary))

	if *csvOut != "" {
		if err := backtest.GenerateCSVExport(edges, *csvOut); err != nil {
			log.Fatalf("Failed to write CSV export: %v", err)
		}
		log.WithField("path", *csvOut).Info("Wrote bet CSV")
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	return cfg
}

// loadData pulls games and pass logs either from the synthetic source
// or from Postgres.
func loadData(ctx context.Context, cfg *config.Config, seasons []int, synthetic bool, log *logrus.Logger) ([]models.Game, []models.PassLog) {
	if synthetic || cfg.Features.SyntheticDataEnabled {
		source := datasource.NewSyntheticSource(datasource.DefaultSyntheticSeed, log)
		var games []models.Game
		var passLogs []models.PassLog
		for _, season := range seasons {
			g, err := source.FetchGames(ctx, season)
			if err != nil {
				log.Fatalf("Failed to generate season %d: %v", season, err)
			}
			games = append(games, g...)
			p, err := source.FetchPassLogs(ctx, season)
			if err != nil {
				log.Fatalf("Failed to generate pass logs %d: %v", season, err)
			}
			passLogs = append(passLogs, p...)
		}
		return games, passLogs
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}

	games, err := repos.Game.GetBySeasons(ctx, seasons)
	if err != nil {
		log.Fatalf("Failed to load games: %v", err)
	}
	passLogs, err := repos.PassLog.GetBySeasons(ctx, seasons)
	if err != nil {
		log.Fatalf("Failed to load pass logs: %v", err)
	}
	return games, passLogs
}

func buildEngine(cfg *config.Config, games []models.Game, passLogs []models.PassLog, log *logrus.Logger) *rating.Engine {
	engine, err := rating.NewEngine(cfg.Rating, gamestore.New(games), log)
	if err != nil {
		log.Fatalf("Failed to create rating engine: %v", err)
	}
	if cfg.Features.QBAdjustmentEnabled && len(passLogs) > 0 {
		engine.SetAdjuster(qb.NewAdjuster(passLogs, log))
	}
	return engine
}
