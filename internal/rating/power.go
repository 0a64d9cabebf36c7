package rating

import (
	"math"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// composePower folds the component ratings into one scalar: each
// per-play component is scaled to per-game points, weighted, and summed.
// Defense enters negated because lower defensive EPA allowed is better.
// qbDelta is an optional offensive EPA-per-play adjustment supplied by
// the QB collaborator.
func composePower(r models.TeamRating, cfg config.RatingConfig, qbDelta float64) float64 {
	plays := cfg.PlaysPerGame

	offPts := (r.OffEPA + qbDelta) * plays
	defPts := r.DefEPA * plays
	toPts := r.TurnoverAdj * plays
	stPts := r.STEPA * plays

	power := cfg.WeightOffEPA*offPts +
		cfg.WeightDefEPA*(-defPts) +
		cfg.WeightTurnoverAdj*toPts +
		cfg.WeightSpecialTeams*stPts

	return round2(power)
}

// centerPowerRatings re-centers the scalar ratings so the cross-team
// mean is zero: a rating is points above or below a league-average team
// at that cutoff.
func centerPowerRatings(powers models.PowerRatings) models.PowerRatings {
	if len(powers) == 0 {
		return powers
	}
	sum := 0.0
	for _, p := range powers {
		sum += p
	}
	mean := sum / float64(len(powers))

	centered := make(models.PowerRatings, len(powers))
	for team, p := range powers {
		centered[team] = round2(p - mean)
	}
	return centered
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
