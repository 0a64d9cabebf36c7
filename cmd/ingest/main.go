// Package main provides the entry point for the data ingestion worker.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/service"
)

// Build information - set via ldflags
var Version = "dev"

func main() {
	cfg, err := config.LoadWithDefaults("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Info("Gridiron Edge ingestion worker starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	httpCfg := datasource.DefaultHTTPClientConfig()
	if cfg.DataIngestion.Schedule.RequestsPerSec > 0 {
		httpCfg.RateLimit = cfg.DataIngestion.Schedule.RequestsPerSec
	}
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, appLog)
	defer httpClient.Close()

	factory := datasource.NewFactory(appLog)
	sources, err := factory.NewDataSources(cfg.DataIngestion, httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create data sources")
	}
	ingestionSvc := service.NewIngestionService(
		sources,
		repos,
		service.NewDataValidator(appLog),
		appLog,
		batchSize(cfg),
	)

	// One full pass at startup so a fresh deployment has data before
	// the first scheduled sync fires.
	primary := sources[0].Name()
	if err := ingestionSvc.IngestSeasons(ctx, primary, cfg.Rating.Seasons); err != nil {
		appLog.WithError(err).Error("Initial ingestion failed")
	}

	sched := scheduler.NewScheduler(ingestionSvc, appLog)
	currentSeason := cfg.Rating.Seasons[len(cfg.Rating.Seasons)-1]
	if err := sched.ScheduleWeeklySync(cfg.DataIngestion.Schedule.WeeklySync, primary, currentSeason); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule weekly sync")
	}
	if expr := cfg.DataIngestion.Schedule.Backfill; expr != "" {
		if err := sched.ScheduleBackfill(expr, primary, cfg.Rating.Seasons); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule backfill")
		}
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      appLog,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthServer.SetReady(true)

	if cfg.Metrics.Enabled {
		go func() {
			addr := ":" + strconv.Itoa(cfg.Metrics.Port)
			appLog.WithField("addr", addr).Info("Metrics server starting")
			if err := metrics.Serve(addr, cfg.Metrics.Path); err != nil {
				appLog.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	appLog.WithField("next_run", sched.GetNextRun()).Info("Ingestion worker running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	appLog.WithField("signal", sig.String()).Info("Shutting down")
	healthServer.SetReady(false)
	cancel()
}

func batchSize(cfg *config.Config) int {
	for _, src := range cfg.DataIngestion.Sources {
		if src.Enabled && src.BatchSize > 0 {
			return src.BatchSize
		}
	}
	return 100
}
