package backtest

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/gamestore"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func nan() float64 { return math.NaN() }

// neutralGames builds a league of statistically identical teams, so
// every prediction is exactly home-field advantage (+2.5) and edges are
// controlled entirely through the market lines below.
func neutralGames() []models.Game {
	return []models.Game{
		{GameID: "w1-ab", Season: 2024, Week: 1, HomeTeam: "A", AwayTeam: "B",
			SpreadLine: nan(), HomePlays: 60, AwayPlays: 60},
		{GameID: "w1-cd", Season: 2024, Week: 1, HomeTeam: "C", AwayTeam: "D",
			SpreadLine: -14.0, HomePlays: 60, AwayPlays: 60},

		// Predicted 2.5 vs market -3.5: edge +6.0, bet home, home
		// wins by 1 and covers.
		{GameID: "w2-ba", Season: 2024, Week: 2, HomeTeam: "B", AwayTeam: "A",
			SpreadLine: -3.5, Result: 1, HomePlays: 60, AwayPlays: 60},
		// Predicted 2.5 vs market 8.0: edge -5.5, bet away, result
		// lands on the line.
		{GameID: "w2-dc", Season: 2024, Week: 2, HomeTeam: "D", AwayTeam: "C",
			SpreadLine: 8.0, Result: 8, HomePlays: 60, AwayPlays: 60},

		// No market line: never evaluated.
		{GameID: "w3-ab", Season: 2024, Week: 3, HomeTeam: "A", AwayTeam: "B",
			SpreadLine: nan(), Result: 21, HomePlays: 60, AwayPlays: 60},
		// Model and market agree: below threshold.
		{GameID: "w3-cd", Season: 2024, Week: 3, HomeTeam: "C", AwayTeam: "D",
			SpreadLine: 2.5, Result: -7, HomePlays: 60, AwayPlays: 60},
	}
}

func newTestEvaluator(t *testing.T, cfg config.BacktestConfig, games []models.Game) *Evaluator {
	t.Helper()
	engine, err := rating.NewEngine(config.DefaultRatingConfig(), gamestore.New(games), testLogger())
	require.NoError(t, err)
	return NewEvaluator(cfg, engine, testLogger())
}

func TestFindEdgesFlagsAndGrades(t *testing.T) {
	ev := newTestEvaluator(t, config.DefaultBacktestConfig(), neutralGames())

	edges := ev.FindEdges(2024, 2)
	require.Len(t, edges, 2)

	won := edges[0]
	assert.Equal(t, "w2-ba", won.GameID)
	assert.InDelta(t, 2.5, won.ModelSpread, 1e-9)
	assert.InDelta(t, -3.5, won.MarketSpread, 1e-9)
	assert.InDelta(t, 6.0, won.Edge, 1e-9)
	assert.Equal(t, "B", won.BetSide)
	assert.Equal(t, models.OutcomeWon, won.Outcome)

	push := edges[1]
	assert.Equal(t, "w2-dc", push.GameID)
	assert.InDelta(t, 5.5, push.Edge, 1e-9)
	assert.Equal(t, "C", push.BetSide)
	assert.Equal(t, models.OutcomePush, push.Outcome)
}

func TestFindEdgesSkipsMissingLinesAndSmallEdges(t *testing.T) {
	ev := newTestEvaluator(t, config.DefaultBacktestConfig(), neutralGames())

	assert.Empty(t, ev.FindEdges(2024, 3))
}

func TestRunSkipsWeekOne(t *testing.T) {
	ev := newTestEvaluator(t, config.DefaultBacktestConfig(), neutralGames())

	// The week-1 C-D game sits 16.5 points off the model but is never
	// evaluated: there is no prior week to rate from.
	edges := ev.Run(2024)
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.GreaterOrEqual(t, e.Week, 2)
	}
}

func TestGradeBet(t *testing.T) {
	// Model favors home by 7, market by 2, home wins by 10: the home
	// bet covers.
	assert.Equal(t, models.OutcomeWon, gradeBet(5.0, 10, 2.0))

	// Same bet, home wins by only 1: market side covers.
	assert.Equal(t, models.OutcomeLost, gradeBet(5.0, 1, 2.0))

	// Away bets grade from the other side of the line.
	assert.Equal(t, models.OutcomeWon, gradeBet(-5.0, 1, 2.0))
	assert.Equal(t, models.OutcomeLost, gradeBet(-5.0, 10, 2.0))

	// Landing exactly on the line is a push regardless of side.
	assert.Equal(t, models.OutcomePush, gradeBet(5.0, 2, 2.0))
	assert.Equal(t, models.OutcomePush, gradeBet(-5.0, 2, 2.0))
}

// trendGames builds a two-team league where A collapses between weeks
// one and two.
func trendGames() []models.Game {
	return []models.Game{
		{GameID: "t1", Season: 2024, Week: 1, HomeTeam: "A", AwayTeam: "B",
			HomeOffEPA: 0.3, HomeDefEPA: -0.15, AwayOffEPA: -0.3, AwayDefEPA: 0.15,
			SpreadLine: nan(), HomePlays: 60, AwayPlays: 60},
		{GameID: "t2", Season: 2024, Week: 2, HomeTeam: "B", AwayTeam: "A",
			HomeOffEPA: 0.3, HomeDefEPA: -0.15, AwayOffEPA: -0.3, AwayDefEPA: 0.15,
			SpreadLine: nan(), HomePlays: 60, AwayPlays: 60},
		// Absurd market makes the home side the flagged bet.
		{GameID: "t3", Season: 2024, Week: 3, HomeTeam: "A", AwayTeam: "B",
			SpreadLine: -20.0, Result: 3, HomePlays: 60, AwayPlays: 60},
	}
}

func TestTrendFilterSuppressesDecliningSide(t *testing.T) {
	cfg := config.DefaultBacktestConfig()
	cfg.UseTrendFilter = true

	ev := newTestEvaluator(t, cfg, trendGames())
	assert.Empty(t, ev.FindEdges(2024, 3))

	cfg.UseTrendFilter = false
	ev = newTestEvaluator(t, cfg, trendGames())
	edges := ev.FindEdges(2024, 3)
	require.Len(t, edges, 1)
	assert.Equal(t, "A", edges[0].BetSide)
}

func TestTrendFilterNeverFiresAtSeasonStart(t *testing.T) {
	cfg := config.DefaultBacktestConfig()
	cfg.UseTrendFilter = true

	ev := newTestEvaluator(t, cfg, trendGames())

	// Rating week 1 collapses the lookback onto itself; a
	// self-comparison carries no signal.
	assert.False(t, ev.sideIsDeclining("A", 2024, 1))

	// At rating week 2 the collapse is visible.
	assert.True(t, ev.sideIsDeclining("A", 2024, 2))
	assert.False(t, ev.sideIsDeclining("B", 2024, 2))
}

func gradedEdges() []models.Edge {
	return []models.Edge{
		{Season: 2023, Edge: 5.0, Outcome: models.OutcomeWon},
		{Season: 2023, Edge: 6.0, Outcome: models.OutcomeWon},
		{Season: 2024, Edge: 7.0, Outcome: models.OutcomeWon},
		{Season: 2024, Edge: 5.5, Outcome: models.OutcomeLost},
		{Season: 2024, Edge: 8.0, Outcome: models.OutcomePush},
		{Season: 2024, Edge: 9.0, Outcome: models.OutcomeWon},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(gradedEdges())

	assert.Equal(t, 5, s.TotalBets)
	assert.Equal(t, 4, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	assert.InDelta(t, 80.0, s.WinPct, 1e-9)
	assert.InDelta(t, 52.38, s.Breakeven, 1e-9)

	// 4 wins x 100 minus 1 loss x 110, over 5 x 110 risked.
	assert.InDelta(t, (400.0-110.0)/550.0*100.0, s.ROI, 1e-9)

	// The pushed 8.0 edge stays out of the average.
	assert.InDelta(t, (5.0+6.0+7.0+5.5+9.0)/5.0, s.AvgEdge, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalBets)
	assert.Zero(t, s.WinPct)
	assert.Zero(t, s.ROI)
	assert.InDelta(t, 52.38, s.Breakeven, 1e-9)
}

func TestSummarizeBySeason(t *testing.T) {
	bySeason := SummarizeBySeason(gradedEdges())
	require.Len(t, bySeason, 2)

	assert.Equal(t, 2, bySeason[2023].TotalBets)
	assert.Equal(t, 2, bySeason[2023].Wins)
	assert.Equal(t, 3, bySeason[2024].TotalBets)
	assert.Equal(t, 1, bySeason[2024].Pushes)
}

func TestBucketByEdge(t *testing.T) {
	buckets := BucketByEdge(gradedEdges())
	require.Len(t, buckets, 2)

	small := buckets[0]
	assert.Equal(t, "5-8 pts", small.Label)
	assert.Equal(t, 4, small.Bets)
	assert.Equal(t, 3, small.Wins)
	assert.Equal(t, 1, small.Losses)
	assert.InDelta(t, 75.0, small.WinPct, 1e-9)

	// The pushed 8.0 edge is excluded; only the 9.0 win lands here.
	large := buckets[1]
	assert.Equal(t, "8+ pts", large.Label)
	assert.Equal(t, 1, large.Bets)
	assert.Equal(t, 1, large.Wins)
}

func TestRoiAt110(t *testing.T) {
	assert.Zero(t, roiAt110(0, 0))

	// An even record loses the juice.
	assert.InDelta(t, (100.0-110.0)/220.0*100.0, roiAt110(1, 1), 1e-9)
	assert.Negative(t, roiAt110(1, 1))
	assert.Positive(t, roiAt110(6, 4))
}
