package service

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Per-play EPA beyond this range means corrupted aggregation upstream,
// not just an unusual game.
const maxPlausibleEPA = 1.5

// DataValidator validates game and pass-log data before persistence
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidateGame validates game data for required fields and constraints
func (v *DataValidator) ValidateGame(game *models.Game) []string {
	var errors []string

	if game.GameID == "" {
		errors = append(errors, "game_id is required")
	}
	if game.HomeTeam == "" {
		errors = append(errors, "home_team is required")
	}
	if game.AwayTeam == "" {
		errors = append(errors, "away_team is required")
	}
	if game.HomeTeam != "" && game.HomeTeam == game.AwayTeam {
		errors = append(errors, fmt.Sprintf("team cannot play itself: %s", game.HomeTeam))
	}

	if game.Season < 1999 {
		errors = append(errors, fmt.Sprintf("season out of range (1999+), got %d", game.Season))
	}
	if game.Week < 1 || game.Week > 22 {
		errors = append(errors, fmt.Sprintf("week out of range (1-22), got %d", game.Week))
	}

	if game.HomeScore < 0 || game.HomeScore > 100 {
		errors = append(errors, fmt.Sprintf("home_score out of range (0-100), got %d", game.HomeScore))
	}
	if game.AwayScore < 0 || game.AwayScore > 100 {
		errors = append(errors, fmt.Sprintf("away_score out of range (0-100), got %d", game.AwayScore))
	}
	if game.Result != game.HomeScore-game.AwayScore {
		errors = append(errors, fmt.Sprintf("result %d does not match score margin %d", game.Result, game.HomeScore-game.AwayScore))
	}

	for name, epa := range map[string]float64{
		"home_off_epa_per_play": game.HomeOffEPA,
		"home_def_epa_per_play": game.HomeDefEPA,
		"away_off_epa_per_play": game.AwayOffEPA,
		"away_def_epa_per_play": game.AwayDefEPA,
	} {
		if math.IsNaN(epa) || math.Abs(epa) > maxPlausibleEPA {
			errors = append(errors, fmt.Sprintf("%s implausible: %v", name, epa))
		}
	}

	if game.HomeTurnovers < 0 || game.HomeTurnovers > 12 {
		errors = append(errors, fmt.Sprintf("home_turnovers out of range (0-12), got %d", game.HomeTurnovers))
	}
	if game.AwayTurnovers < 0 || game.AwayTurnovers > 12 {
		errors = append(errors, fmt.Sprintf("away_turnovers out of range (0-12), got %d", game.AwayTurnovers))
	}

	if game.HomePlays < 0 || game.HomePlays > 120 {
		errors = append(errors, fmt.Sprintf("home_plays out of range (0-120), got %d", game.HomePlays))
	}
	if game.AwayPlays < 0 || game.AwayPlays > 120 {
		errors = append(errors, fmt.Sprintf("away_plays out of range (0-120), got %d", game.AwayPlays))
	}

	// NaN market line is a legal "no line" marker; only finite lines
	// get the range check.
	if game.HasSpreadLine() && math.Abs(game.SpreadLine) > 30 {
		errors = append(errors, fmt.Sprintf("spread_line out of range (|x| <= 30), got %v", game.SpreadLine))
	}

	return errors
}

// ValidatePassLog validates a QB pass log entry
func (v *DataValidator) ValidatePassLog(log *models.PassLog) []string {
	var errors []string

	if log.GameID == "" {
		errors = append(errors, "game_id is required")
	}
	if log.Team == "" {
		errors = append(errors, "team is required")
	}
	if log.PasserID == "" {
		errors = append(errors, "passer_player_id is required")
	}

	if log.Week < 1 || log.Week > 22 {
		errors = append(errors, fmt.Sprintf("week out of range (1-22), got %d", log.Week))
	}
	if log.Attempts < 0 || log.Attempts > 80 {
		errors = append(errors, fmt.Sprintf("attempts out of range (0-80), got %d", log.Attempts))
	}
	if math.IsNaN(log.EPAPerPlay) || math.Abs(log.EPAPerPlay) > maxPlausibleEPA {
		errors = append(errors, fmt.Sprintf("qb_epa_per_play implausible: %v", log.EPAPerPlay))
	}

	return errors
}

// IsValidTeamCode checks if a team abbreviation is in expected format
func (v *DataValidator) IsValidTeamCode(team string) bool {
	return len(team) >= 2 && len(team) <= 3
}
