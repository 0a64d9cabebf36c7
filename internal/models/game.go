package models

import (
	"math"
	"time"
)

// Game represents one completed game with per-side efficiency aggregates.
// Rows are created once by ingestion and never mutated afterward.
type Game struct {
	GameID        string  `db:"game_id" json:"game_id" validate:"required"`
	Season        int     `db:"season" json:"season" validate:"required,gte=1999"`
	Week          int     `db:"week" json:"week" validate:"required,gte=1,lte=22"`
	HomeTeam      string  `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam      string  `db:"away_team" json:"away_team" validate:"required"`
	HomeScore     int     `db:"home_score" json:"home_score" validate:"gte=0"`
	AwayScore     int     `db:"away_score" json:"away_score" validate:"gte=0"`
	Result        int     `db:"result" json:"result"` // home score minus away score
	SpreadLine    float64 `db:"spread_line" json:"spread_line"` // market line, positive = home favored; NaN when no line
	HomeOffEPA    float64 `db:"home_off_epa_per_play" json:"home_off_epa_per_play"`
	HomeDefEPA    float64 `db:"home_def_epa_per_play" json:"home_def_epa_per_play"`
	AwayOffEPA    float64 `db:"away_off_epa_per_play" json:"away_off_epa_per_play"`
	AwayDefEPA    float64 `db:"away_def_epa_per_play" json:"away_def_epa_per_play"`
	HomeTurnovers int     `db:"home_turnovers" json:"home_turnovers" validate:"gte=0"`
	AwayTurnovers int     `db:"away_turnovers" json:"away_turnovers" validate:"gte=0"`
	HomeSTEPA     float64 `db:"home_st_epa_per_play" json:"home_st_epa_per_play"`
	AwaySTEPA     float64 `db:"away_st_epa_per_play" json:"away_st_epa_per_play"`
	HomePlays     int     `db:"home_plays" json:"home_plays" validate:"gte=0"`
	AwayPlays     int     `db:"away_plays" json:"away_plays" validate:"gte=0"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasSpreadLine reports whether the game carried a market line.
// Games without a line still feed rating computation but are excluded
// from edge evaluation.
func (g *Game) HasSpreadLine() bool {
	return !math.IsNaN(g.SpreadLine)
}

// Involves reports whether the given team played in this game.
func (g *Game) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// TeamGameView is a projection of a Game onto one team's perspective.
// Derived on demand by the game store, never persisted.
type TeamGameView struct {
	GameID       string
	Season       int
	Week         int
	Team         string
	Opponent     string
	IsHome       bool
	OffEPA       float64
	DefEPA       float64
	Turnovers    int
	OppTurnovers int
	STEPA        float64
	Plays        int
}

// ViewFor projects the game onto the given team's perspective.
// The second return is false when the team did not play in this game.
func (g *Game) ViewFor(team string) (TeamGameView, bool) {
	switch team {
	case g.HomeTeam:
		return TeamGameView{
			GameID:       g.GameID,
			Season:       g.Season,
			Week:         g.Week,
			Team:         team,
			Opponent:     g.AwayTeam,
			IsHome:       true,
			OffEPA:       g.HomeOffEPA,
			DefEPA:       g.HomeDefEPA,
			Turnovers:    g.HomeTurnovers,
			OppTurnovers: g.AwayTurnovers,
			STEPA:        g.HomeSTEPA,
			Plays:        g.HomePlays,
		}, true
	case g.AwayTeam:
		return TeamGameView{
			GameID:       g.GameID,
			Season:       g.Season,
			Week:         g.Week,
			Team:         team,
			Opponent:     g.HomeTeam,
			IsHome:       false,
			OffEPA:       g.AwayOffEPA,
			DefEPA:       g.AwayDefEPA,
			Turnovers:    g.AwayTurnovers,
			OppTurnovers: g.HomeTurnovers,
			STEPA:        g.AwaySTEPA,
			Plays:        g.AwayPlays,
		}, true
	}
	return TeamGameView{}, false
}
