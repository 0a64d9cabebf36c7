package gamestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// testGames is deliberately out of order to exercise the sort on load.
func testGames() []models.Game {
	return []models.Game{
		{GameID: "2024_02_BUF_KC", Season: 2024, Week: 2, HomeTeam: "BUF", AwayTeam: "KC",
			HomeScore: 24, AwayScore: 20, Result: 4, HomeOffEPA: 0.12, AwayOffEPA: 0.08,
			HomeTurnovers: 1, AwayTurnovers: 2, HomePlays: 63, AwayPlays: 61},
		{GameID: "2024_01_KC_BUF", Season: 2024, Week: 1, HomeTeam: "KC", AwayTeam: "BUF",
			HomeScore: 27, AwayScore: 17, Result: 10, HomeOffEPA: 0.15, AwayOffEPA: -0.02,
			HomeTurnovers: 0, AwayTurnovers: 1, HomePlays: 65, AwayPlays: 60},
		{GameID: "2023_18_KC_DEN", Season: 2023, Week: 18, HomeTeam: "KC", AwayTeam: "DEN",
			HomeScore: 13, AwayScore: 16, Result: -3, HomePlays: 58, AwayPlays: 66},
	}
}

func TestStoreSortsAndIndexes(t *testing.T) {
	s := New(testGames())

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{2023, 2024}, s.Seasons())
	assert.Equal(t, 2, s.MaxWeek(2024))
	assert.Equal(t, 18, s.MaxWeek(2023))
	assert.Equal(t, 0, s.MaxWeek(2020))
}

func TestTeamsAreHomeTeams(t *testing.T) {
	s := New(testGames())

	// DEN only appears on the road, so it is not part of the 2023
	// team universe.
	assert.Equal(t, []string{"KC"}, s.Teams(2023))
	assert.Equal(t, []string{"BUF", "KC"}, s.Teams(2024))
}

func TestGamesThroughRespectsCutoff(t *testing.T) {
	s := New(testGames())

	week1 := s.GamesThrough(2024, 1)
	require.Len(t, week1, 1)
	assert.Equal(t, "2024_01_KC_BUF", week1[0].GameID)

	all := s.GamesThrough(2024, 18)
	assert.Len(t, all, 2)

	assert.Empty(t, s.GamesThrough(2024, 0))
}

func TestGamesForWeek(t *testing.T) {
	s := New(testGames())

	games := s.GamesForWeek(2024, 2)
	require.Len(t, games, 1)
	assert.Equal(t, "BUF", games[0].HomeTeam)
	assert.Empty(t, s.GamesForWeek(2024, 3))
}

func TestTeamGamesProjectsPerspective(t *testing.T) {
	s := New(testGames())

	views := s.TeamGames("KC", 2024, 18)
	require.Len(t, views, 2)

	// Week 1 at home.
	assert.Equal(t, 1, views[0].Week)
	assert.True(t, views[0].IsHome)
	assert.Equal(t, "BUF", views[0].Opponent)
	assert.InDelta(t, 0.15, views[0].OffEPA, 1e-9)
	assert.Equal(t, 0, views[0].Turnovers)
	assert.Equal(t, 1, views[0].OppTurnovers)

	// Week 2 on the road: stats come from the away side.
	assert.Equal(t, 2, views[1].Week)
	assert.False(t, views[1].IsHome)
	assert.Equal(t, "BUF", views[1].Opponent)
	assert.InDelta(t, 0.08, views[1].OffEPA, 1e-9)
	assert.Equal(t, 61, views[1].Plays)
}

func TestTeamGamesCutoffAndUnknownTeam(t *testing.T) {
	s := New(testGames())

	assert.Len(t, s.TeamGames("KC", 2024, 1), 1)
	assert.Empty(t, s.TeamGames("SEA", 2024, 18))
}

func TestStoreCopiesInput(t *testing.T) {
	games := testGames()
	s := New(games)

	games[0].HomeScore = 99
	stored := s.GamesForWeek(2024, 2)
	require.Len(t, stored, 1)
	assert.Equal(t, 24, stored[0].HomeScore)
}
