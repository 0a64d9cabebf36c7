// Package qb tracks quarterback-level passing efficiency and turns
// starter changes into offensive rating adjustments. A team's base
// rating is built mostly on its primary starter; when a backup takes
// over, the gap between the two can be worth several points a game.
package qb

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// DefaultMinAttempts is the pass-attempt floor below which a QB's EPA
// estimate is heavily regressed toward the league average.
const DefaultMinAttempts = 30

const epaDecay = 0.92

// Passer describes one QB's regressed EPA estimate.
type Passer struct {
	ID       string
	Name     string
	EPA      float64
	Attempts int
	Reliable bool
}

// TeamStatus reports a team's QB situation as of a cutoff week.
type TeamStatus struct {
	Team       string
	CurrentQB  string
	PrimaryQB  string
	Changed    bool
	CurrentEPA float64
	PrimaryEPA float64
	Adjustment float64
}

// Adjuster indexes per-game pass logs and computes offensive EPA
// deltas when a team's starter differs from its primary QB. All
// lookups use only logs at or before the cutoff week.
type Adjuster struct {
	minAttempts  int
	logger       *logrus.Logger
	byPasser     map[string][]models.PassLog // primary starts only, sorted by (season, week)
	byTeamSeason map[teamSeasonKey][]models.PassLog
	leagueEPA    map[int]float64
}

type teamSeasonKey struct {
	team   string
	season int
}

// NewAdjuster builds the QB index from pass logs. Logs may arrive in
// any order; non-primary relief appearances count toward attempt
// totals but not toward a passer's EPA profile.
func NewAdjuster(logs []models.PassLog, logger *logrus.Logger) *Adjuster {
	a := &Adjuster{
		minAttempts:  DefaultMinAttempts,
		logger:       logger,
		byPasser:     make(map[string][]models.PassLog),
		byTeamSeason: make(map[teamSeasonKey][]models.PassLog),
		leagueEPA:    make(map[int]float64),
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, log := range logs {
		key := teamSeasonKey{team: log.Team, season: log.Season}
		a.byTeamSeason[key] = append(a.byTeamSeason[key], log)
		if log.IsPrimary {
			a.byPasser[log.PasserID] = append(a.byPasser[log.PasserID], log)
		}
		sums[log.Season] += log.EPAPerPlay
		counts[log.Season]++
	}
	for season, sum := range sums {
		a.leagueEPA[season] = sum / float64(counts[season])
	}

	for id := range a.byPasser {
		entries := a.byPasser[id]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Season != entries[j].Season {
				return entries[i].Season < entries[j].Season
			}
			return entries[i].Week < entries[j].Week
		})
	}
	for key := range a.byTeamSeason {
		entries := a.byTeamSeason[key]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Week < entries[j].Week
		})
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"passers": len(a.byPasser),
			"logs":    len(logs),
		}).Debug("QB profiles indexed")
	}
	return a
}

// SetMinAttempts overrides the reliability floor.
func (a *Adjuster) SetMinAttempts(n int) {
	if n > 0 {
		a.minAttempts = n
	}
}

// PasserEPA returns a QB's recency-weighted EPA/play through a cutoff
// week, regressed toward the league average by sample size. A passer
// with no primary starts that season falls back to the previous
// season's mean, regressed halfway to league average; with no history
// at all it returns the league average outright.
func (a *Adjuster) PasserEPA(passerID string, season, throughWeek int) Passer {
	var logs []models.PassLog
	for _, log := range a.byPasser[passerID] {
		if log.Season == season && log.Week <= throughWeek {
			logs = append(logs, log)
		}
	}

	if len(logs) == 0 {
		var prevSum float64
		var prevAttempts, prevCount int
		for _, log := range a.byPasser[passerID] {
			if log.Season == season-1 {
				prevSum += log.EPAPerPlay
				prevAttempts += log.Attempts
				prevCount++
			}
		}
		if prevCount > 0 {
			prevEPA := prevSum / float64(prevCount)
			regressed := prevEPA*0.5 + a.leagueEPA[season-1]*0.5
			return Passer{ID: passerID, EPA: regressed, Attempts: prevAttempts}
		}
		return Passer{ID: passerID, EPA: a.leagueEPA[season]}
	}

	var weightedSum, weightSum float64
	attempts := 0
	for _, log := range logs {
		w := math.Pow(epaDecay, float64(throughWeek-log.Week))
		weightedSum += log.EPAPerPlay * w
		weightSum += w
		attempts += log.Attempts
	}
	epa := weightedSum / weightSum

	reliability := math.Min(1, float64(attempts)/float64(a.minAttempts*3))
	regressed := epa*reliability + a.leagueEPA[season]*(1-reliability)

	return Passer{
		ID:       passerID,
		Name:     logs[len(logs)-1].PasserName,
		EPA:      regressed,
		Attempts: attempts,
		Reliable: attempts >= a.minAttempts,
	}
}

// AdjustmentFor returns the offensive EPA/play delta for a team:
// the current starter's EPA minus the primary QB's, dampened by the
// current starter's sample size, and zero when the starter has not
// changed. Satisfies the rating engine's Adjuster interface.
func (a *Adjuster) AdjustmentFor(team string, season, throughWeek int) float64 {
	return a.StatusFor(team, season, throughWeek).Adjustment
}

// StatusFor returns the full QB situation for a team as of a cutoff
// week, including names and both EPA estimates.
func (a *Adjuster) StatusFor(team string, season, throughWeek int) TeamStatus {
	status := TeamStatus{Team: team}

	current, ok := a.currentStarter(team, season, throughWeek)
	if !ok {
		return status
	}
	status.CurrentQB = current.PasserName

	primaryID, primaryName, ok := a.primaryThroughWeek(team, season, throughWeek)
	if !ok {
		return status
	}
	status.PrimaryQB = primaryName
	status.Changed = current.PasserID != primaryID
	if !status.Changed {
		// Same QB starting; the team's EPA already reflects them.
		return status
	}

	currentStats := a.PasserEPA(current.PasserID, season, throughWeek)
	primaryStats := a.PasserEPA(primaryID, season, throughWeek)
	status.CurrentEPA = currentStats.EPA
	status.PrimaryEPA = primaryStats.EPA

	confidence := math.Min(1, float64(currentStats.Attempts)/float64(a.minAttempts*2))
	status.Adjustment = round4((currentStats.EPA - primaryStats.EPA) * confidence)

	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"team":       team,
			"from":       primaryName,
			"to":         current.PasserName,
			"adjustment": status.Adjustment,
		}).Debug("QB change detected")
	}
	return status
}

// currentStarter finds the team's most recent primary starter at or
// before the cutoff week.
func (a *Adjuster) currentStarter(team string, season, throughWeek int) (models.PassLog, bool) {
	entries := a.byTeamSeason[teamSeasonKey{team: team, season: season}]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Week <= throughWeek && entries[i].IsPrimary {
			return entries[i], true
		}
	}
	return models.PassLog{}, false
}

// primaryThroughWeek identifies the team's primary QB by cumulative
// attempts across all appearances through the cutoff week.
func (a *Adjuster) primaryThroughWeek(team string, season, throughWeek int) (id, name string, ok bool) {
	entries := a.byTeamSeason[teamSeasonKey{team: team, season: season}]
	attempts := make(map[string]int)
	names := make(map[string]string)
	for _, log := range entries {
		if log.Week > throughWeek {
			continue
		}
		attempts[log.PasserID] += log.Attempts
		names[log.PasserID] = log.PasserName
	}
	if len(attempts) == 0 {
		return "", "", false
	}

	best := -1
	for passerID, total := range attempts {
		if total > best || (total == best && passerID < id) {
			best = total
			id = passerID
		}
	}
	return id, names[id], true
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
