// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RatingSnapshotsComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "rating_snapshots_computed_total",
		Help:      "Total number of power rating snapshots computed",
	})
	RatingCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "rating_cache_hits_total",
		Help:      "Total number of rating snapshot cache hits",
	})
	SpreadsPredictedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "spreads_predicted_total",
		Help:      "Total number of spread predictions produced",
	})
	EdgesFlaggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "edges_flagged_total",
		Help:      "Total number of games flagged as betting edges",
	})
	BacktestsRunTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "backtests_run_total",
		Help:      "Total number of season backtests executed",
	})
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "games_ingested_total",
		Help:      "Total number of games persisted by ingestion",
	})
	IngestionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "ingestion_errors_total",
		Help:      "Total number of ingestion errors",
	})
)

// Gauge metrics
var (
	LoadedGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "loaded_games",
		Help:      "Number of games currently loaded in the engine",
	})
	LastBacktestWinRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_backtest_win_rate",
		Help:      "ATS win percentage of the most recent backtest",
	})
	LastBacktestROI = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_backtest_roi",
		Help:      "ROI of the most recent backtest at -110 pricing",
	})
)

// Histogram metrics
var (
	RatingComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "rating_compute_duration_seconds",
		Help:      "Time to compute one rating snapshot",
		Buckets:   prometheus.DefBuckets,
	})
)

// Registry returns the global registry, initializing it on first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			RatingSnapshotsComputedTotal,
			RatingCacheHitsTotal,
			SpreadsPredictedTotal,
			EdgesFlaggedTotal,
			BacktestsRunTotal,
			GamesIngestedTotal,
			IngestionErrorsTotal,
			LoadedGames,
			LastBacktestWinRate,
			LastBacktestROI,
			RatingComputeDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// Serve starts a metrics HTTP server on the given address and path.
// Blocks until the server exits.
func Serve(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return http.ListenAndServe(addr, mux)
}
