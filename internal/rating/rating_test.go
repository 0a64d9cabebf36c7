package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/gamestore"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestRecencyWeights(t *testing.T) {
	views := []models.TeamGameView{
		{Week: 3},
		{Week: 2},
		{Week: 1},
	}
	weights := recencyWeights(views, 3, 0.92)

	require.Len(t, weights, 3)
	assert.InDelta(t, 1.0, weights[0], 1e-12)
	assert.InDelta(t, 0.92, weights[1], 1e-12)
	assert.InDelta(t, 0.92*0.92, weights[2], 1e-12)

	// Strictly decaying with age.
	assert.Greater(t, weights[0], weights[1])
	assert.Greater(t, weights[1], weights[2])
}

func TestWeightedMean(t *testing.T) {
	assert.InDelta(t, 2.0, weightedMean([]float64{1, 3}, []float64{1, 1}), 1e-12)
	assert.InDelta(t, 3.0, weightedMean([]float64{1, 3}, []float64{0, 1}), 1e-12)
	assert.Zero(t, weightedMean(nil, nil))
	assert.Zero(t, weightedMean([]float64{1}, []float64{0}))
	assert.Zero(t, weightedMean([]float64{1, 2}, []float64{1}))
}

func TestComputeLeagueAverages(t *testing.T) {
	store := gamestore.New([]models.Game{
		{GameID: "g1", Season: 2024, Week: 1, HomeTeam: "A", AwayTeam: "B",
			HomeTurnovers: 2, AwayTurnovers: 0,
			HomeOffEPA: 0.2, AwayOffEPA: 0.0,
			HomeDefEPA: -0.1, AwayDefEPA: 0.1,
			HomePlays: 60, AwayPlays: 60},
	})

	avg := computeLeagueAverages(store, 2024, 1)
	assert.InDelta(t, 1.0, avg.TurnoversPerGame, 1e-12)
	assert.InDelta(t, 0.1, avg.OffEPA, 1e-12)
	assert.InDelta(t, 0.0, avg.DefEPA, 1e-12)

	// No games through the cutoff yields the zero value.
	assert.Equal(t, models.LeagueAverages{}, computeLeagueAverages(store, 2024, 0))
}

func TestBuildRawRatingsTurnoverRegression(t *testing.T) {
	cfg := config.DefaultRatingConfig()
	store := gamestore.New([]models.Game{
		{GameID: "g1", Season: 2024, Week: 1, HomeTeam: "A", AwayTeam: "B",
			HomeTurnovers: 2, AwayTurnovers: 0,
			HomePlays: 60, AwayPlays: 60},
	})
	leagueAvg := computeLeagueAverages(store, 2024, 1)

	raw := buildRawRatings(store, cfg, 2024, 1, leagueAvg)
	a, ok := raw["A"]
	require.True(t, ok)

	// Own turnovers regress from 2 to 1.5, opponent's from 0 to 0.5;
	// the one-turnover deficit is worth -3.5 points over 60 plays.
	assert.InDelta(t, -3.5/60.0, a.TurnoverAdj, 1e-9)
	assert.Equal(t, 1, a.GamesPlayed)
	assert.Equal(t, []string{"B"}, a.Opponents)
}

func TestBuildRawRatingsZeroPlaysGuard(t *testing.T) {
	cfg := config.DefaultRatingConfig()
	store := gamestore.New([]models.Game{
		{GameID: "g1", Season: 2024, Week: 1, HomeTeam: "A", AwayTeam: "B",
			HomeTurnovers: 3, AwayTurnovers: 0,
			HomePlays: 0, AwayPlays: 0},
	})
	leagueAvg := computeLeagueAverages(store, 2024, 1)

	raw := buildRawRatings(store, cfg, 2024, 1, leagueAvg)
	assert.Zero(t, raw["A"].TurnoverAdj)
}

func TestBuildRawRatingsZeroGameTeam(t *testing.T) {
	cfg := config.DefaultRatingConfig()
	store := gamestore.New([]models.Game{
		{GameID: "g1", Season: 2024, Week: 1, HomeTeam: "A", AwayTeam: "B",
			HomeOffEPA: 0.2, HomePlays: 60, AwayPlays: 60},
		{GameID: "g2", Season: 2024, Week: 5, HomeTeam: "C", AwayTeam: "D",
			HomePlays: 60, AwayPlays: 60},
	})
	leagueAvg := computeLeagueAverages(store, 2024, 2)

	// C hosts in week 5 so it is in the team universe, but it has no
	// games through week 2.
	raw := buildRawRatings(store, cfg, 2024, 2, leagueAvg)
	c, ok := raw["C"]
	require.True(t, ok)
	assert.Equal(t, models.TeamRating{Team: "C"}, c)
}

func TestOpponentAdjustSingleIteration(t *testing.T) {
	raw := models.RatingSet{
		"A": {Team: "A", OffEPA: 0.1, DefEPA: 0.0, Opponents: []string{"B"}},
		"B": {Team: "B", OffEPA: 0.2, DefEPA: -0.05, Opponents: []string{"A"}},
	}

	adjusted := opponentAdjust(raw, 1)

	// A faced a defense allowing -0.05, so its offense gains 0.05; its
	// defense faced an offense producing 0.2.
	assert.InDelta(t, 0.15, adjusted["A"].OffEPA, 1e-12)
	assert.InDelta(t, 0.20, adjusted["A"].DefEPA, 1e-12)
	assert.InDelta(t, 0.20, adjusted["B"].OffEPA, 1e-12)
	assert.InDelta(t, 0.05, adjusted["B"].DefEPA, 1e-12)

	// Inputs are never mutated.
	assert.InDelta(t, 0.1, raw["A"].OffEPA, 1e-12)
}

func TestOpponentAdjustZeroGameTeamIsNoOp(t *testing.T) {
	raw := models.RatingSet{
		"A": {Team: "A", OffEPA: 0.1, DefEPA: -0.1, Opponents: []string{"B"}},
		"B": {Team: "B", OffEPA: 0.2, DefEPA: -0.05, Opponents: []string{"A"}},
		"C": {Team: "C"},
	}

	adjusted := opponentAdjust(raw, 10)
	assert.Equal(t, models.TeamRating{Team: "C"}, adjusted["C"])
}

func TestOpponentAdjustSkipsUnknownOpponents(t *testing.T) {
	raw := models.RatingSet{
		"A": {Team: "A", OffEPA: 0.1, DefEPA: -0.02, Opponents: []string{"GONE"}},
	}

	adjusted := opponentAdjust(raw, 10)

	// With no resolvable opponents the schedule adjustment is zero.
	assert.InDelta(t, 0.1, adjusted["A"].OffEPA, 1e-12)
	assert.InDelta(t, -0.02, adjusted["A"].DefEPA, 1e-12)
}

func TestBlendPriorIdentityAtZeroWeek(t *testing.T) {
	cfg := config.DefaultRatingConfig()
	current := models.RatingSet{"A": {Team: "A", OffEPA: 0.1}}
	prior := models.RatingSet{"A": {Team: "A", OffEPA: 0.5}}

	assert.Equal(t, current, blendPrior(current, prior, cfg.PriorZeroWeightWeek, cfg))
	assert.Equal(t, current, blendPrior(current, prior, cfg.PriorZeroWeightWeek+3, cfg))
	assert.Equal(t, current, blendPrior(current, nil, 2, cfg))
}

func TestBlendPriorLinearRamp(t *testing.T) {
	cfg := config.DefaultRatingConfig() // full weight week 1, zero weight week 9, shrink 0.67
	current := models.RatingSet{
		"A": {Team: "A", OffEPA: 0.1},
		"B": {Team: "B", OffEPA: 0.3},
	}
	prior := models.RatingSet{"A": {Team: "A", OffEPA: 0.2}}

	blended := blendPrior(current, prior, 5, cfg)

	// Week 5 sits halfway along the 1..9 ramp: half current, half
	// regressed prior.
	assert.InDelta(t, 0.5*0.1+0.5*0.2*0.67, blended["A"].OffEPA, 1e-12)

	// B has no prior entry and keeps its current rating.
	assert.InDelta(t, 0.3, blended["B"].OffEPA, 1e-12)
}

func TestComposePower(t *testing.T) {
	cfg := config.DefaultRatingConfig()
	r := models.TeamRating{OffEPA: 0.1, DefEPA: -0.05, TurnoverAdj: 0.01, STEPA: 0.02}

	// 0.35*6.5 + 0.35*3.25 + 0.20*0.65 + 0.10*1.3 = 3.6725, rounded.
	assert.InDelta(t, 3.67, composePower(r, cfg, 0), 1e-12)
}

func TestComposePowerAppliesQBDelta(t *testing.T) {
	cfg := config.DefaultRatingConfig()
	r := models.TeamRating{OffEPA: 0.1}

	base := composePower(r, cfg, 0)
	downgraded := composePower(r, cfg, -0.1)

	// A -0.1 EPA/play QB delta costs 0.35 * 0.1 * 65 = 2.275 points.
	assert.InDelta(t, 2.28, base-downgraded, 0.011)
}

func TestCenterPowerRatings(t *testing.T) {
	centered := centerPowerRatings(models.PowerRatings{"A": 3, "B": 1})
	assert.InDelta(t, 1.0, centered["A"], 1e-12)
	assert.InDelta(t, -1.0, centered["B"], 1e-12)

	empty := centerPowerRatings(models.PowerRatings{})
	assert.Empty(t, empty)
}
