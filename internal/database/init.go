package database

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// Initialize creates a database connection pool and ensures the core
// tables exist. Games and pass logs are append-only; re-ingesting a
// season upserts on game_id.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func createSchema(ctx context.Context, db *DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id               TEXT PRIMARY KEY,
	season                INT NOT NULL,
	week                  INT NOT NULL,
	home_team             TEXT NOT NULL,
	away_team             TEXT NOT NULL,
	home_score            INT NOT NULL,
	away_score            INT NOT NULL,
	result                INT NOT NULL,
	spread_line           DOUBLE PRECISION,
	home_off_epa_per_play DOUBLE PRECISION NOT NULL,
	home_def_epa_per_play DOUBLE PRECISION NOT NULL,
	away_off_epa_per_play DOUBLE PRECISION NOT NULL,
	away_def_epa_per_play DOUBLE PRECISION NOT NULL,
	home_turnovers        INT NOT NULL,
	away_turnovers        INT NOT NULL,
	home_st_epa_per_play  DOUBLE PRECISION NOT NULL,
	away_st_epa_per_play  DOUBLE PRECISION NOT NULL,
	home_plays            INT NOT NULL,
	away_plays            INT NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_games_season_week ON games (season, week);

CREATE TABLE IF NOT EXISTS pass_logs (
	game_id      TEXT NOT NULL,
	season       INT NOT NULL,
	week         INT NOT NULL,
	team         TEXT NOT NULL,
	passer_id    TEXT NOT NULL,
	passer_name  TEXT NOT NULL,
	attempts     INT NOT NULL,
	epa_per_play DOUBLE PRECISION NOT NULL,
	total_epa    DOUBLE PRECISION NOT NULL,
	is_primary   BOOLEAN NOT NULL,
	PRIMARY KEY (game_id, passer_id)
);
CREATE INDEX IF NOT EXISTS idx_pass_logs_team_season ON pass_logs (team, season);
`
	_, err := db.pool.Exec(ctx, schema)
	return err
}
