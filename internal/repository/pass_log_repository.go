package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const passLogColumns = `game_id, season, week, team, passer_id, passer_name,
	       attempts, epa_per_play, total_epa, is_primary`

const upsertPassLogSQL = `
	INSERT INTO pass_logs (game_id, season, week, team, passer_id, passer_name,
		attempts, epa_per_play, total_epa, is_primary)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (game_id, passer_id) DO UPDATE SET
		attempts = EXCLUDED.attempts,
		epa_per_play = EXCLUDED.epa_per_play,
		total_epa = EXCLUDED.total_epa,
		is_primary = EXCLUDED.is_primary
`

// PostgresPassLogRepository implements PassLogRepository for PostgreSQL
type PostgresPassLogRepository struct {
	db *database.DB
}

// NewPostgresPassLogRepository creates a new pass log repository
func NewPostgresPassLogRepository(db *database.DB) PassLogRepository {
	return &PostgresPassLogRepository{db: db}
}

// UpsertBatch persists a batch of pass logs in one transaction,
// returning how many were written
func (r *PostgresPassLogRepository) UpsertBatch(ctx context.Context, logs []models.PassLog) (int, error) {
	written := 0
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, log := range logs {
			_, err := tx.Exec(ctx, upsertPassLogSQL,
				log.GameID, log.Season, log.Week, log.Team, log.PasserID, log.PasserName,
				log.Attempts, log.EPAPerPlay, log.TotalEPA, log.IsPrimary,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert pass log: %w", err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// GetBySeason retrieves all pass logs for one season ordered by week
func (r *PostgresPassLogRepository) GetBySeason(ctx context.Context, season int) ([]models.PassLog, error) {
	return r.query(ctx, `SELECT `+passLogColumns+` FROM pass_logs WHERE season = $1 ORDER BY week, game_id`, season)
}

// GetBySeasons retrieves all pass logs for the given seasons
func (r *PostgresPassLogRepository) GetBySeasons(ctx context.Context, seasons []int) ([]models.PassLog, error) {
	return r.query(ctx, `SELECT `+passLogColumns+` FROM pass_logs WHERE season = ANY($1) ORDER BY season, week, game_id`, seasons)
}

func (r *PostgresPassLogRepository) query(ctx context.Context, query string, arg any) ([]models.PassLog, error) {
	rows, err := r.db.GetPool().Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query pass logs: %w", err)
	}
	defer rows.Close()

	var logs []models.PassLog
	for rows.Next() {
		var log models.PassLog
		err := rows.Scan(
			&log.GameID, &log.Season, &log.Week, &log.Team, &log.PasserID, &log.PasserName,
			&log.Attempts, &log.EPAPerPlay, &log.TotalEPA, &log.IsPrimary,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
