// Package gamestore holds the normalized per-game statistics table and
// answers the range queries the rating engine needs. Games are loaded
// once, up front; the store is read-only afterward.
package gamestore

import (
	"sort"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Store is the in-memory games table, sorted by (season, week).
type Store struct {
	games []models.Game

	// byTeamSeason indexes each team's games within a season, already
	// ordered by week, so perspective queries avoid a full scan.
	byTeamSeason map[teamSeasonKey][]int
	bySeason     map[int][]int
}

type teamSeasonKey struct {
	team   string
	season int
}

// New creates a store over a copy of the given games table.
func New(games []models.Game) *Store {
	sorted := append([]models.Game(nil), games...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Season != sorted[j].Season {
			return sorted[i].Season < sorted[j].Season
		}
		return sorted[i].Week < sorted[j].Week
	})

	s := &Store{
		games:        sorted,
		byTeamSeason: make(map[teamSeasonKey][]int),
		bySeason:     make(map[int][]int),
	}
	for i, g := range sorted {
		s.bySeason[g.Season] = append(s.bySeason[g.Season], i)
		homeKey := teamSeasonKey{team: g.HomeTeam, season: g.Season}
		awayKey := teamSeasonKey{team: g.AwayTeam, season: g.Season}
		s.byTeamSeason[homeKey] = append(s.byTeamSeason[homeKey], i)
		s.byTeamSeason[awayKey] = append(s.byTeamSeason[awayKey], i)
	}
	return s
}

// Len returns the number of loaded games.
func (s *Store) Len() int {
	return len(s.games)
}

// Seasons returns the distinct seasons present, ascending.
func (s *Store) Seasons() []int {
	seasons := make([]int, 0, len(s.bySeason))
	for season := range s.bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons
}

// Teams returns the distinct home teams of a season's games. A team
// with only road games so far still appears once it has hosted; the
// rating engine treats the home-team set as the season's team universe.
func (s *Store) Teams(season int) []string {
	seen := make(map[string]struct{})
	for _, idx := range s.bySeason[season] {
		seen[s.games[idx].HomeTeam] = struct{}{}
	}
	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// MaxWeek returns the latest week with a game in the season, or 0 when
// the season has no games.
func (s *Store) MaxWeek(season int) int {
	max := 0
	for _, idx := range s.bySeason[season] {
		if w := s.games[idx].Week; w > max {
			max = w
		}
	}
	return max
}

// GamesThrough returns the season's games with week <= throughWeek,
// ordered by week.
func (s *Store) GamesThrough(season, throughWeek int) []models.Game {
	var out []models.Game
	for _, idx := range s.bySeason[season] {
		if g := s.games[idx]; g.Week <= throughWeek {
			out = append(out, g)
		}
	}
	return out
}

// GamesForWeek returns the season's games scheduled in exactly the
// given week.
func (s *Store) GamesForWeek(season, week int) []models.Game {
	var out []models.Game
	for _, idx := range s.bySeason[season] {
		if g := s.games[idx]; g.Week == week {
			out = append(out, g)
		}
	}
	return out
}

// TeamGames reconstructs a team's game history through a cutoff week,
// projected onto the team's own perspective and ordered by week. A team
// with no games yet yields an empty slice, not an error.
func (s *Store) TeamGames(team string, season, throughWeek int) []models.TeamGameView {
	var out []models.TeamGameView
	for _, idx := range s.byTeamSeason[teamSeasonKey{team: team, season: season}] {
		g := s.games[idx]
		if g.Week > throughWeek {
			continue
		}
		if view, ok := g.ViewFor(team); ok {
			out = append(out, view)
		}
	}
	return out
}
