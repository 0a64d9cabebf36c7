package models

// PassLog is one quarterback's passing line for one game. The primary
// flag marks the passer with the most attempts for their team that week.
type PassLog struct {
	GameID     string  `db:"game_id" json:"game_id" validate:"required"`
	Season     int     `db:"season" json:"season" validate:"required"`
	Week       int     `db:"week" json:"week" validate:"required,gte=1"`
	Team       string  `db:"team" json:"team" validate:"required"`
	PasserID   string  `db:"passer_id" json:"passer_id" validate:"required"`
	PasserName string  `db:"passer_name" json:"passer_name"`
	Attempts   int     `db:"attempts" json:"attempts" validate:"gte=0"`
	EPAPerPlay float64 `db:"epa_per_play" json:"epa_per_play"`
	TotalEPA   float64 `db:"total_epa" json:"total_epa"`
	IsPrimary  bool    `db:"is_primary" json:"is_primary"`
}
