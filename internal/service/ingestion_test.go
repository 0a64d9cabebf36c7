package service

import (
	"context"
	"io"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

type memoryGameRepo struct {
	games map[string]models.Game
}

func (r *memoryGameRepo) Upsert(_ context.Context, g *models.Game) error {
	r.games[g.GameID] = *g
	return nil
}

func (r *memoryGameRepo) UpsertWithTx(ctx context.Context, _ pgx.Tx, g *models.Game) error {
	return r.Upsert(ctx, g)
}

func (r *memoryGameRepo) UpsertBatch(ctx context.Context, games []models.Game) (int, error) {
	for i := range games {
		if err := r.Upsert(ctx, &games[i]); err != nil {
			return i, err
		}
	}
	return len(games), nil
}

func (r *memoryGameRepo) GetByID(_ context.Context, id string) (*models.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &g, nil
}

func (r *memoryGameRepo) GetBySeason(_ context.Context, season int) ([]models.Game, error) {
	var out []models.Game
	for _, g := range r.games {
		if g.Season == season {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memoryGameRepo) GetBySeasons(ctx context.Context, seasons []int) ([]models.Game, error) {
	var out []models.Game
	for _, season := range seasons {
		games, _ := r.GetBySeason(ctx, season)
		out = append(out, games...)
	}
	return out, nil
}

func (r *memoryGameRepo) CountBySeason(ctx context.Context, season int) (int, error) {
	games, _ := r.GetBySeason(ctx, season)
	return len(games), nil
}

type memoryPassLogRepo struct {
	logs []models.PassLog
}

func (r *memoryPassLogRepo) UpsertBatch(_ context.Context, logs []models.PassLog) (int, error) {
	r.logs = append(r.logs, logs...)
	return len(logs), nil
}

func (r *memoryPassLogRepo) GetBySeason(_ context.Context, season int) ([]models.PassLog, error) {
	var out []models.PassLog
	for _, l := range r.logs {
		if l.Season == season {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memoryPassLogRepo) GetBySeasons(ctx context.Context, seasons []int) ([]models.PassLog, error) {
	var out []models.PassLog
	for _, season := range seasons {
		logs, _ := r.GetBySeason(ctx, season)
		out = append(out, logs...)
	}
	return out, nil
}

func testIngestionService(t *testing.T) (*IngestionService, *memoryGameRepo, *memoryPassLogRepo) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gameRepo := &memoryGameRepo{games: make(map[string]models.Game)}
	passLogRepo := &memoryPassLogRepo{}
	repos := &repository.Repositories{Game: gameRepo, PassLog: passLogRepo}

	source := datasource.NewSyntheticSource(datasource.DefaultSyntheticSeed, logger)
	svc := NewIngestionService(
		[]datasource.GameDataSource{source},
		repos,
		NewDataValidator(logger),
		logger,
		50,
	)
	return svc, gameRepo, passLogRepo
}

func TestIngestSeasonPersistsFullSchedule(t *testing.T) {
	svc, gameRepo, passLogRepo := testIngestionService(t)

	m, err := svc.IngestSeason(context.Background(), "synthetic", 2024)
	require.NoError(t, err)

	assert.Equal(t, 288, m.TotalGames)
	assert.Equal(t, 288, m.SuccessfulGames)
	assert.Len(t, gameRepo.games, 288)
	// Two primary passer logs per game.
	assert.Equal(t, 576, m.TotalPassLogs)
	assert.Len(t, passLogRepo.logs, 576)
	assert.Zero(t, m.Errors)
}

func TestIngestSeasonUnknownSource(t *testing.T) {
	svc, _, _ := testIngestionService(t)

	_, err := svc.IngestSeason(context.Background(), "nope", 2024)
	assert.Error(t, err)
}

func TestIngestSeasonsStopsOnFailure(t *testing.T) {
	svc, gameRepo, _ := testIngestionService(t)

	err := svc.IngestSeasons(context.Background(), "synthetic", []int{2023, 2024})
	require.NoError(t, err)
	// Both seasons landed.
	count2023 := 0
	for _, g := range gameRepo.games {
		if g.Season == 2023 {
			count2023++
		}
	}
	assert.Equal(t, 288, count2023)
	assert.Len(t, gameRepo.games, 576)
}
