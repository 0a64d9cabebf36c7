package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// IngestionService handles the data ingestion workflow: fetch,
// validate, persist. One run covers one or more seasons from one
// source.
type IngestionService struct {
	sources     []datasource.GameDataSource
	gameRepo    repository.GameRepository
	passLogRepo repository.PassLogRepository
	validator   *DataValidator
	metrics     *IngestionMetrics
	logger      *logrus.Logger
	batchSize   int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.GameDataSource,
	repos *repository.Repositories,
	validator *DataValidator,
	logger *logrus.Logger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &IngestionService{
		sources:     sources,
		gameRepo:    repos.Game,
		passLogRepo: repos.PassLog,
		validator:   validator,
		metrics:     NewIngestionMetrics(),
		logger:      logger,
		batchSize:   batchSize,
	}
}

// IngestSeason fetches and persists one season from the named source
func (s *IngestionService) IngestSeason(ctx context.Context, sourceName string, season int) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()
	runID := uuid.New().String()

	source, err := s.findSource(sourceName)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"source": sourceName,
		"season": season,
	}).Info("Starting season ingestion")

	games, err := source.FetchGames(ctx, season)
	if err != nil {
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
		return s.metrics, fmt.Errorf("failed to fetch games: %w", err)
	}
	s.metrics.TotalGames = len(games)

	for start := 0; start < len(games); start += s.batchSize {
		end := start + s.batchSize
		if end > len(games) {
			end = len(games)
		}
		s.processGameBatch(ctx, games[start:end])
	}

	if err := s.ingestPassLogs(ctx, source, season); err != nil {
		// Pass logs are an enrichment; ratings still work without them.
		s.logger.WithError(err).Warn("Pass log ingestion failed")
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
	}

	s.metrics.Duration = time.Since(startTime)
	s.logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"season":   season,
		"games":    s.metrics.SuccessfulGames,
		"passlogs": s.metrics.TotalPassLogs,
		"errors":   s.metrics.Errors,
		"duration": s.metrics.Duration,
	}).Info("Season ingestion complete")

	return s.metrics, nil
}

// IngestSeasons runs IngestSeason per season, stopping on fetch failure
func (s *IngestionService) IngestSeasons(ctx context.Context, sourceName string, seasons []int) error {
	for _, season := range seasons {
		if _, err := s.IngestSeason(ctx, sourceName, season); err != nil {
			return fmt.Errorf("season %d: %w", season, err)
		}
	}
	return nil
}

func (s *IngestionService) findSource(name string) (datasource.GameDataSource, error) {
	for _, src := range s.sources {
		if src.Name() == name {
			return src, nil
		}
	}
	return nil, fmt.Errorf("data source not found: %s", name)
}

func (s *IngestionService) processGameBatch(ctx context.Context, batch []models.Game) {
	valid := batch[:0:0]
	for i := range batch {
		if errs := s.validator.ValidateGame(&batch[i]); len(errs) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"game_id": batch[i].GameID,
				"errors":  errs,
			}).Warn("Game failed validation")
			continue
		}
		valid = append(valid, batch[i])
	}

	written, err := s.gameRepo.UpsertBatch(ctx, valid)
	if err != nil {
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
		s.logger.WithError(err).Error("Failed to persist game batch")
		return
	}

	for i := 0; i < written; i++ {
		s.metrics.RecordGame()
	}
	metrics.GamesIngestedTotal.Add(float64(written))
}

func (s *IngestionService) ingestPassLogs(ctx context.Context, source datasource.GameDataSource, season int) error {
	logs, err := source.FetchPassLogs(ctx, season)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		return nil
	}

	valid := logs[:0:0]
	for i := range logs {
		if errs := s.validator.ValidatePassLog(&logs[i]); len(errs) > 0 {
			s.metrics.RecordValidationError()
			continue
		}
		valid = append(valid, logs[i])
	}

	written, err := s.passLogRepo.UpsertBatch(ctx, valid)
	if err != nil {
		return err
	}
	for i := 0; i < written; i++ {
		s.metrics.RecordPassLog()
	}
	return nil
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}
