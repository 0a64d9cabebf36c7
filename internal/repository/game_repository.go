package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const errScanGame = "failed to scan game: %w"

const gameColumns = `game_id, season, week, home_team, away_team, home_score, away_score,
	       result, spread_line, home_off_epa_per_play, home_def_epa_per_play,
	       away_off_epa_per_play, away_def_epa_per_play, home_turnovers, away_turnovers,
	       home_st_epa_per_play, away_st_epa_per_play, home_plays, away_plays, created_at`

const upsertGameSQL = `
	INSERT INTO games (game_id, season, week, home_team, away_team, home_score, away_score,
		result, spread_line, home_off_epa_per_play, home_def_epa_per_play,
		away_off_epa_per_play, away_def_epa_per_play, home_turnovers, away_turnovers,
		home_st_epa_per_play, away_st_epa_per_play, home_plays, away_plays)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (game_id) DO UPDATE SET
		home_score = EXCLUDED.home_score,
		away_score = EXCLUDED.away_score,
		result = EXCLUDED.result,
		spread_line = EXCLUDED.spread_line,
		home_off_epa_per_play = EXCLUDED.home_off_epa_per_play,
		home_def_epa_per_play = EXCLUDED.home_def_epa_per_play,
		away_off_epa_per_play = EXCLUDED.away_off_epa_per_play,
		away_def_epa_per_play = EXCLUDED.away_def_epa_per_play,
		home_turnovers = EXCLUDED.home_turnovers,
		away_turnovers = EXCLUDED.away_turnovers,
		home_st_epa_per_play = EXCLUDED.home_st_epa_per_play,
		away_st_epa_per_play = EXCLUDED.away_st_epa_per_play,
		home_plays = EXCLUDED.home_plays,
		away_plays = EXCLUDED.away_plays
`

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

func gameArgs(g *models.Game) []any {
	return []any{
		g.GameID, g.Season, g.Week, g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore,
		g.Result, g.SpreadLine, g.HomeOffEPA, g.HomeDefEPA,
		g.AwayOffEPA, g.AwayDefEPA, g.HomeTurnovers, g.AwayTurnovers,
		g.HomeSTEPA, g.AwaySTEPA, g.HomePlays, g.AwayPlays,
	}
}

// Upsert inserts or replaces a game keyed by game_id
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	if _, err := r.db.GetPool().Exec(ctx, upsertGameSQL, gameArgs(game)...); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return nil
}

// UpsertWithTx inserts or replaces a game using a provided transaction
func (r *PostgresGameRepository) UpsertWithTx(ctx context.Context, tx pgx.Tx, game *models.Game) error {
	if _, err := tx.Exec(ctx, upsertGameSQL, gameArgs(game)...); err != nil {
		return fmt.Errorf("failed to upsert game within transaction: %w", err)
	}
	return nil
}

// UpsertBatch persists a batch of games in one transaction, returning
// how many were written
func (r *PostgresGameRepository) UpsertBatch(ctx context.Context, games []models.Game) (int, error) {
	written := 0
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for i := range games {
			if err := r.UpsertWithTx(ctx, tx, &games[i]); err != nil {
				return err
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

// GetByID retrieves a game by its ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, gameID).Scan(scanTargets(game)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// GetBySeason retrieves all games for one season ordered by week
func (r *PostgresGameRepository) GetBySeason(ctx context.Context, season int) ([]models.Game, error) {
	return r.querySeasons(ctx, `SELECT `+gameColumns+` FROM games WHERE season = $1 ORDER BY week, game_id`, season)
}

// GetBySeasons retrieves all games for the given seasons ordered by season and week
func (r *PostgresGameRepository) GetBySeasons(ctx context.Context, seasons []int) ([]models.Game, error) {
	return r.querySeasons(ctx, `SELECT `+gameColumns+` FROM games WHERE season = ANY($1) ORDER BY season, week, game_id`, seasons)
}

// CountBySeason returns how many games are stored for a season
func (r *PostgresGameRepository) CountBySeason(ctx context.Context, season int) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM games WHERE season = $1`, season).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

func (r *PostgresGameRepository) querySeasons(ctx context.Context, query string, arg any) ([]models.Game, error) {
	rows, err := r.db.GetPool().Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(scanTargets(&game)...); err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanTargets(g *models.Game) []any {
	return []any{
		&g.GameID, &g.Season, &g.Week, &g.HomeTeam, &g.AwayTeam, &g.HomeScore, &g.AwayScore,
		&g.Result, &g.SpreadLine, &g.HomeOffEPA, &g.HomeDefEPA,
		&g.AwayOffEPA, &g.AwayDefEPA, &g.HomeTurnovers, &g.AwayTurnovers,
		&g.HomeSTEPA, &g.AwaySTEPA, &g.HomePlays, &g.AwayPlays, &g.CreatedAt,
	}
}
