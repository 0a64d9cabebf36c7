package models

// TeamRating holds the per-component rating figures for one team at a
// given (season, through-week) cutoff. The same shape flows through the
// raw, opponent-adjusted, and prior-blended stages; each stage produces
// a fresh value rather than mutating its input.
type TeamRating struct {
	Team        string   `json:"team"`
	OffEPA      float64  `json:"off_epa"`
	DefEPA      float64  `json:"def_epa"`
	TurnoverAdj float64  `json:"turnover_adj"`
	STEPA       float64  `json:"st_epa"`
	GamesPlayed int      `json:"games_played"`
	Opponents   []string `json:"opponents"` // ordered by week, one entry per game played
}

// Clone returns a deep copy so a downstream stage can never alias the
// previous stage's opponents slice.
func (r TeamRating) Clone() TeamRating {
	out := r
	out.Opponents = append([]string(nil), r.Opponents...)
	return out
}

// RatingSet maps team code to its component rating at one cutoff.
type RatingSet map[string]TeamRating

// PowerRatings maps team code to the zero-centered scalar power rating
// at one cutoff.
type PowerRatings map[string]float64

// LeagueAverages is a per (season, through-week) snapshot of league-wide
// means used as the turnover regression baseline.
type LeagueAverages struct {
	TurnoversPerGame float64 `json:"avg_turnovers_per_game"`
	OffEPA           float64 `json:"avg_off_epa"`
	DefEPA           float64 `json:"avg_def_epa"`
}
