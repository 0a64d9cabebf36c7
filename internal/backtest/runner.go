package backtest

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Run walks the season forward, evaluating every week from 2 through
// the season's last played week and concatenating the flagged edges.
// Week 1 is skipped: no prior-week ratings exist to predict from. An
// empty result is legitimate, not an error.
func (ev *Evaluator) Run(season int) []models.Edge {
	maxWeek := ev.engine.Store().MaxWeek(season)
	return ev.RunThrough(season, maxWeek)
}

// RunThrough backtests the season through the given week only, capping
// at the last played week.
func (ev *Evaluator) RunThrough(season, maxWeek int) []models.Edge {
	if last := ev.engine.Store().MaxWeek(season); maxWeek > last {
		maxWeek = last
	}

	var all []models.Edge
	for week := 2; week <= maxWeek; week++ {
		all = append(all, ev.FindEdges(season, week)...)
	}

	metrics.BacktestsRunTotal.Inc()
	ev.logger.WithFields(logrus.Fields{
		"season": season,
		"weeks":  maxWeek,
		"edges":  len(all),
	}).Info("Backtest complete")

	return all
}

// RunSeasons backtests several seasons and concatenates their edges.
func (ev *Evaluator) RunSeasons(seasons []int) []models.Edge {
	var all []models.Edge
	for _, season := range seasons {
		all = append(all, ev.Run(season)...)
	}
	return all
}
