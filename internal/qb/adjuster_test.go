package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// testLogs builds a small league where the current-season league
// average EPA is exactly zero, so regression targets are easy to
// reason about. KC rides QB1 for five weeks, then QB2 takes over in
// week 6.
func testLogs() []models.PassLog {
	logs := []models.PassLog{}
	for week := 1; week <= 5; week++ {
		logs = append(logs, models.PassLog{
			GameID: "g", Season: 2024, Week: week, Team: "KC",
			PasserID: "QB1", PasserName: "Starter One",
			Attempts: 35, EPAPerPlay: 0.2, IsPrimary: true,
		})
	}
	logs = append(logs, models.PassLog{
		GameID: "g6", Season: 2024, Week: 6, Team: "KC",
		PasserID: "QB2", PasserName: "Backup Two",
		Attempts: 30, EPAPerPlay: -0.1, IsPrimary: true,
	})
	// BUF entries balance the league sum to zero.
	for week := 1; week <= 3; week++ {
		logs = append(logs, models.PassLog{
			GameID: "b", Season: 2024, Week: week, Team: "BUF",
			PasserID: "QB3", PasserName: "Buffalo QB",
			Attempts: 30, EPAPerPlay: -0.3, IsPrimary: true,
		})
	}
	return logs
}

func TestAdjustmentForSameStarterIsZero(t *testing.T) {
	a := NewAdjuster(testLogs(), nil)

	// Through week 5 QB1 is both the most recent starter and the
	// primary QB, so no adjustment applies.
	assert.Zero(t, a.AdjustmentFor("KC", 2024, 5))
}

func TestAdjustmentForStarterChange(t *testing.T) {
	a := NewAdjuster(testLogs(), nil)

	status := a.StatusFor("KC", 2024, 6)
	require.True(t, status.Changed)
	assert.Equal(t, "Backup Two", status.CurrentQB)
	assert.Equal(t, "Starter One", status.PrimaryQB)

	// QB1: 175 attempts, fully reliable, EPA 0.2.
	// QB2: 30 attempts, reliability 30/90, EPA -0.1 regressed to a
	// zero league average gives -1/30. Confidence 30/60 halves the
	// raw gap of -0.2333..., landing on -0.1167 after rounding.
	assert.InDelta(t, 0.2, status.PrimaryEPA, 1e-9)
	assert.InDelta(t, -1.0/30.0, status.CurrentEPA, 1e-9)
	assert.InDelta(t, -0.1167, status.Adjustment, 1e-9)
	assert.InDelta(t, status.Adjustment, a.AdjustmentFor("KC", 2024, 6), 1e-9)
}

func TestAdjustmentForUnknownTeam(t *testing.T) {
	a := NewAdjuster(testLogs(), nil)

	status := a.StatusFor("NYJ", 2024, 6)
	assert.False(t, status.Changed)
	assert.Zero(t, status.Adjustment)
}

func TestPasserEPAFullyReliable(t *testing.T) {
	a := NewAdjuster(testLogs(), nil)

	p := a.PasserEPA("QB1", 2024, 5)
	assert.True(t, p.Reliable)
	assert.Equal(t, 175, p.Attempts)
	// Uniform per-game EPA is unchanged by recency weighting, and a
	// full sample is unchanged by regression.
	assert.InDelta(t, 0.2, p.EPA, 1e-9)
}

func TestPasserEPAPreviousSeasonFallback(t *testing.T) {
	logs := []models.PassLog{
		{GameID: "p1", Season: 2023, Week: 10, Team: "DEN",
			PasserID: "QB4", PasserName: "Vet", Attempts: 32, EPAPerPlay: 0.3, IsPrimary: true},
		{GameID: "p2", Season: 2023, Week: 11, Team: "DEN",
			PasserID: "QB4", PasserName: "Vet", Attempts: 28, EPAPerPlay: 0.1, IsPrimary: true},
		// Balance the 2023 league average to zero.
		{GameID: "p3", Season: 2023, Week: 10, Team: "LV",
			PasserID: "QB5", PasserName: "Other", Attempts: 30, EPAPerPlay: -0.2, IsPrimary: true},
		{GameID: "p4", Season: 2023, Week: 11, Team: "LV",
			PasserID: "QB5", PasserName: "Other", Attempts: 30, EPAPerPlay: -0.2, IsPrimary: true},
	}
	a := NewAdjuster(logs, nil)

	// No 2024 starts: previous-season mean of 0.2 is regressed
	// halfway to the 2023 league average of zero.
	p := a.PasserEPA("QB4", 2024, 5)
	assert.False(t, p.Reliable)
	assert.InDelta(t, 0.1, p.EPA, 1e-9)
}

func TestPasserEPANoHistory(t *testing.T) {
	a := NewAdjuster(testLogs(), nil)

	p := a.PasserEPA("nobody", 2024, 5)
	assert.False(t, p.Reliable)
	assert.Zero(t, p.Attempts)
	assert.InDelta(t, a.leagueEPA[2024], p.EPA, 1e-9)
}

func TestPrimaryDeterminedByCumulativeAttempts(t *testing.T) {
	logs := testLogs()
	a := NewAdjuster(logs, nil)

	id, name, ok := a.primaryThroughWeek("KC", 2024, 6)
	require.True(t, ok)
	assert.Equal(t, "QB1", id)
	assert.Equal(t, "Starter One", name)

	// Future weeks never leak into the primary determination.
	id, _, ok = a.primaryThroughWeek("KC", 2024, 2)
	require.True(t, ok)
	assert.Equal(t, "QB1", id)
}
