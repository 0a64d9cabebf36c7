package rating

import (
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/gamestore"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// computeLeagueAverages snapshots the league-wide means used as the
// turnover regression baseline, over all games through the cutoff week.
func computeLeagueAverages(store *gamestore.Store, season, throughWeek int) models.LeagueAverages {
	games := store.GamesThrough(season, throughWeek)
	if len(games) == 0 {
		return models.LeagueAverages{}
	}

	var homeTO, awayTO, homeOff, awayOff, homeDef, awayDef float64
	for _, g := range games {
		homeTO += float64(g.HomeTurnovers)
		awayTO += float64(g.AwayTurnovers)
		homeOff += g.HomeOffEPA
		awayOff += g.AwayOffEPA
		homeDef += g.HomeDefEPA
		awayDef += g.AwayDefEPA
	}
	n := float64(len(games))

	return models.LeagueAverages{
		TurnoversPerGame: (homeTO/n + awayTO/n) / 2,
		OffEPA:           (homeOff/n + awayOff/n) / 2,
		DefEPA:           (homeDef/n + awayDef/n) / 2,
	}
}

// buildRawRatings computes non-opponent-adjusted component ratings for
// every team in the season. Teams without a game through the cutoff get
// all-zero components and an empty opponents list, so they pass through
// the adjustment solver untouched.
func buildRawRatings(store *gamestore.Store, cfg config.RatingConfig, season, throughWeek int, leagueAvg models.LeagueAverages) models.RatingSet {
	raw := make(models.RatingSet)

	for _, team := range store.Teams(season) {
		views := store.TeamGames(team, season, throughWeek)
		if len(views) == 0 {
			raw[team] = models.TeamRating{Team: team}
			continue
		}

		weights := recencyWeights(views, throughWeek, cfg.RecencyDecay)

		offVals := make([]float64, len(views))
		defVals := make([]float64, len(views))
		stVals := make([]float64, len(views))
		toVals := make([]float64, len(views))
		oppToVals := make([]float64, len(views))
		opponents := make([]string, len(views))
		totalPlays := 0
		for i, v := range views {
			offVals[i] = v.OffEPA
			defVals[i] = v.DefEPA
			stVals[i] = v.STEPA
			toVals[i] = float64(v.Turnovers)
			oppToVals[i] = float64(v.OppTurnovers)
			opponents[i] = v.Opponent
			totalPlays += v.Plays
		}

		// Turnovers are noisy; regress both sides toward the league
		// average before valuing the differential.
		reg := cfg.TurnoverRegressionFactor
		actualTO := weightedMean(toVals, weights)
		actualOppTO := weightedMean(oppToVals, weights)
		regressedTO := actualTO*(1-reg) + leagueAvg.TurnoversPerGame*reg
		regressedOppTO := actualOppTO*(1-reg) + leagueAvg.TurnoversPerGame*reg

		turnoverPts := (regressedOppTO - regressedTO) * cfg.TurnoverPointValue
		turnoverAdj := 0.0
		if avgPlays := float64(totalPlays) / float64(len(views)); avgPlays > 0 {
			turnoverAdj = turnoverPts / avgPlays
		}

		raw[team] = models.TeamRating{
			Team:        team,
			OffEPA:      weightedMean(offVals, weights),
			DefEPA:      weightedMean(defVals, weights),
			TurnoverAdj: turnoverAdj,
			STEPA:       weightedMean(stVals, weights),
			GamesPlayed: len(views),
			Opponents:   opponents,
		}
	}

	return raw
}
