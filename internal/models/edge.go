package models

// Outcome represents the graded result of a flagged bet
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	// OutcomePush is graded when the actual result lands exactly on the
	// market line; the bet is excluded from win/loss and ROI tallies.
	OutcomePush Outcome = "push"
)

// Decided reports whether the outcome counts toward win/loss records.
func (o Outcome) Decided() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// Edge represents one game flagged by the model as a betting opportunity
type Edge struct {
	GameID       string  `db:"game_id" json:"game_id"`
	Season       int     `db:"season" json:"season"`
	Week         int     `db:"week" json:"week"`
	HomeTeam     string  `db:"home_team" json:"home_team"`
	AwayTeam     string  `db:"away_team" json:"away_team"`
	ModelSpread  float64 `db:"model_spread" json:"model_spread"`
	MarketSpread float64 `db:"market_spread" json:"market_spread"`
	Edge         float64 `db:"edge" json:"edge"` // absolute model-vs-market gap, rounded to 0.1
	BetSide      string  `db:"bet_side" json:"bet_side"`
	ActualResult int     `db:"actual_result" json:"actual_result"`
	Outcome      Outcome `db:"outcome" json:"outcome"`
}
