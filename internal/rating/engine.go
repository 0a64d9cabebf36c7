// Package rating implements the power-rating engine: recency-weighted
// efficiency aggregation, iterative opponent adjustment, preseason prior
// blending, and spread prediction.
package rating

import (
	"fmt"
	"math"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/gamestore"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Adjuster supplies an offensive EPA-per-play delta for a team, using
// only information available through the cutoff week. The engine adds
// the delta to the team's offensive figure before composing the power
// scalar. Typically backed by the QB performance tracker.
type Adjuster interface {
	AdjustmentFor(team string, season, throughWeek int) float64
}

// Engine computes and caches power rating snapshots. Snapshots are
// keyed by (season, through-week), written at most once per key, and
// never invalidated, so repeated queries are deterministic. The engine
// expects a single writer; see the package tests for the coherence
// property.
type Engine struct {
	cfg      config.RatingConfig
	store    *gamestore.Store
	adjuster Adjuster
	logger   *logrus.Logger

	// detailed holds component RatingSet snapshots, power holds the
	// centered scalar snapshots; both read-through.
	detailed *cache.Cache
	power    *cache.Cache

	// latestWeek tracks the most recent cutoff computed per season, so
	// the next season's prior blend can find its predecessor's final
	// snapshot without reaching into shared state.
	latestWeek map[int]int
}

// NewEngine creates a rating engine over the given game store.
func NewEngine(cfg config.RatingConfig, store *gamestore.Store, logger *logrus.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("game store is required")
	}
	if store.Len() == 0 {
		return nil, models.ErrNoGamesLoaded
	}
	if logger == nil {
		logger = logrus.New()
	}

	metrics.LoadedGames.Set(float64(store.Len()))

	return &Engine{
		cfg:        cfg,
		store:      store,
		logger:     logger,
		detailed:   cache.New(cache.NoExpiration, cache.NoExpiration),
		power:      cache.New(cache.NoExpiration, cache.NoExpiration),
		latestWeek: make(map[int]int),
	}, nil
}

// SetAdjuster injects the optional QB adjustment collaborator.
func (e *Engine) SetAdjuster(a Adjuster) {
	e.adjuster = a
}

// Config returns the engine configuration.
func (e *Engine) Config() config.RatingConfig {
	return e.cfg
}

// Store returns the underlying game store.
func (e *Engine) Store() *gamestore.Store {
	return e.store
}

func snapshotKey(season, throughWeek int) string {
	return fmt.Sprintf("%d:%d", season, throughWeek)
}

// ComputeRatings returns the zero-centered scalar power ratings for all
// teams at the given cutoff, computing and caching the snapshot if it
// does not exist yet.
func (e *Engine) ComputeRatings(season, throughWeek int) models.PowerRatings {
	key := snapshotKey(season, throughWeek)
	if cached, found := e.power.Get(key); found {
		metrics.RatingCacheHitsTotal.Inc()
		return cached.(models.PowerRatings)
	}

	started := time.Now()

	leagueAvg := computeLeagueAverages(e.store, season, throughWeek)
	raw := buildRawRatings(e.store, e.cfg, season, throughWeek, leagueAvg)
	adjusted := opponentAdjust(raw, e.cfg.OpponentAdjIterations)
	blended := blendPrior(adjusted, e.priorSnapshot(season), throughWeek, e.cfg)

	e.detailed.Set(key, blended, cache.NoExpiration)
	if throughWeek > e.latestWeek[season] {
		e.latestWeek[season] = throughWeek
	}

	powers := make(models.PowerRatings, len(blended))
	for team, r := range blended {
		powers[team] = composePower(r, e.cfg, e.qbDelta(team, season, throughWeek))
	}
	powers = centerPowerRatings(powers)
	e.power.Set(key, powers, cache.NoExpiration)

	metrics.RatingSnapshotsComputedTotal.Inc()
	metrics.RatingComputeDuration.Observe(time.Since(started).Seconds())
	e.logger.WithFields(logrus.Fields{
		"season": season,
		"week":   throughWeek,
		"teams":  len(powers),
	}).Debug("Computed rating snapshot")

	return powers
}

// DetailedRatings returns the blended component ratings at a cutoff,
// computing the snapshot if needed.
func (e *Engine) DetailedRatings(season, throughWeek int) models.RatingSet {
	key := snapshotKey(season, throughWeek)
	if cached, found := e.detailed.Get(key); found {
		return cached.(models.RatingSet)
	}
	e.ComputeRatings(season, throughWeek)
	cached, _ := e.detailed.Get(key)
	return cached.(models.RatingSet)
}

// PredictSpread predicts the point spread for a matchup: home rating
// minus away rating plus home-field advantage, rounded to the nearest
// half point. Positive means home favored. Returns false when either
// team has no rating at the cutoff.
func (e *Engine) PredictSpread(homeTeam, awayTeam string, season, throughWeek int) (float64, bool) {
	ratings := e.ComputeRatings(season, throughWeek)

	home, homeOK := ratings[homeTeam]
	away, awayOK := ratings[awayTeam]
	if !homeOK || !awayOK {
		return 0, false
	}

	spread := home - away + e.cfg.HomeFieldAdvantage
	metrics.SpreadsPredictedTotal.Inc()
	return math.Round(spread*2) / 2, true
}

// priorSnapshot returns the previous season's most recently computed
// component snapshot, or nil when that season has not been rated.
func (e *Engine) priorSnapshot(season int) models.RatingSet {
	week, ok := e.latestWeek[season-1]
	if !ok {
		return nil
	}
	cached, found := e.detailed.Get(snapshotKey(season-1, week))
	if !found {
		return nil
	}
	return cached.(models.RatingSet)
}

func (e *Engine) qbDelta(team string, season, throughWeek int) float64 {
	if e.adjuster == nil {
		return 0
	}
	return e.adjuster.AdjustmentFor(team, season, throughWeek)
}
