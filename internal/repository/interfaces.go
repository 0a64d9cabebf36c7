package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// GameRepository defines game persistence operations
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	UpsertBatch(ctx context.Context, games []models.Game) (int, error)
	GetByID(ctx context.Context, gameID string) (*models.Game, error)
	GetBySeason(ctx context.Context, season int) ([]models.Game, error)
	GetBySeasons(ctx context.Context, seasons []int) ([]models.Game, error)
	CountBySeason(ctx context.Context, season int) (int, error)
	UpsertWithTx(ctx context.Context, tx pgx.Tx, game *models.Game) error
}

// PassLogRepository defines QB pass-log persistence operations
type PassLogRepository interface {
	UpsertBatch(ctx context.Context, logs []models.PassLog) (int, error)
	GetBySeason(ctx context.Context, season int) ([]models.PassLog, error)
	GetBySeasons(ctx context.Context, seasons []int) ([]models.PassLog, error)
}
