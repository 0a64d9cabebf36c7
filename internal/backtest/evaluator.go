// Package backtest compares model predictions against market spreads,
// flags edges, and grades them against actual results in a leakage-safe
// walk-forward loop.
package backtest

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

// trendLookbackWeeks is the window the trend filter compares against.
const trendLookbackWeeks = 4

// Evaluator flags and grades betting edges for single weeks.
type Evaluator struct {
	cfg    config.BacktestConfig
	engine *rating.Engine
	logger *logrus.Logger
}

// NewEvaluator creates an edge evaluator over a rating engine.
func NewEvaluator(cfg config.BacktestConfig, engine *rating.Engine, logger *logrus.Logger) *Evaluator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Evaluator{cfg: cfg, engine: engine, logger: logger}
}

// FindEdges evaluates one week's scheduled games against the market.
// Ratings are computed through week-1 only, so no same-week or future
// information leaks into the prediction. Games without a market line
// are silently excluded. Returns the flagged games, possibly empty.
func (ev *Evaluator) FindEdges(season, week int) []models.Edge {
	ratingsWeek := week - 1
	if ratingsWeek < 1 {
		ratingsWeek = 1
	}
	ev.engine.ComputeRatings(season, ratingsWeek)

	var edges []models.Edge
	for _, game := range ev.engine.Store().GamesForWeek(season, week) {
		predicted, ok := ev.engine.PredictSpread(game.HomeTeam, game.AwayTeam, season, ratingsWeek)
		if !ok || !game.HasSpreadLine() {
			continue
		}

		market := game.SpreadLine
		edge := predicted - market
		if math.Abs(edge) < ev.cfg.MinEdgeThreshold {
			continue
		}

		// Model stronger on home than market is -> bet home, else away.
		betSide := game.AwayTeam
		if edge > 0 {
			betSide = game.HomeTeam
		}

		if ev.cfg.UseTrendFilter && ev.sideIsDeclining(betSide, season, ratingsWeek) {
			ev.logger.WithFields(logrus.Fields{
				"game": game.GameID,
				"side": betSide,
			}).Debug("Edge suppressed by trend filter")
			continue
		}

		edges = append(edges, models.Edge{
			GameID:       game.GameID,
			Season:       season,
			Week:         week,
			HomeTeam:     game.HomeTeam,
			AwayTeam:     game.AwayTeam,
			ModelSpread:  predicted,
			MarketSpread: market,
			Edge:         math.Round(math.Abs(edge)*10) / 10,
			BetSide:      betSide,
			ActualResult: game.Result,
			Outcome:      gradeBet(edge, game.Result, market),
		})
		metrics.EdgesFlaggedTotal.Inc()
	}

	return edges
}

// gradeBet grades a flagged bet against the closing line. Home covers
// when the actual result beats the market spread; a result landing
// exactly on the line is a push regardless of side.
func gradeBet(edge float64, result int, market float64) models.Outcome {
	if float64(result) == market {
		return models.OutcomePush
	}
	homeCovered := float64(result) > market
	betHome := edge > 0
	if betHome == homeCovered {
		return models.OutcomeWon
	}
	return models.OutcomeLost
}

// sideIsDeclining reports whether the bet-side team's power rating fell
// by more than the configured threshold over the trailing rating weeks.
// Near season start the lookback collapses onto the rating week itself;
// a self-comparison carries no signal, so the filter never fires there.
func (ev *Evaluator) sideIsDeclining(team string, season, ratingsWeek int) bool {
	earlierWeek := ratingsWeek - trendLookbackWeeks
	if earlierWeek < 1 {
		earlierWeek = 1
	}
	if earlierWeek == ratingsWeek {
		return false
	}

	current, okNow := ev.engine.ComputeRatings(season, ratingsWeek)[team]
	earlier, okThen := ev.engine.ComputeRatings(season, earlierWeek)[team]
	if !okNow || !okThen {
		return false
	}

	return current-earlier < ev.cfg.TrendDeclineThreshold
}
