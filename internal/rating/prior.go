package rating

import (
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// blendPrior mixes current-season ratings with last season's final
// ratings during the season's early weeks. The prior's weight falls
// linearly from 1.0 at the full-weight week to 0.0 at the zero-weight
// week; prior components are first regressed toward the league mean by
// the configured factor. At or past the zero-weight week, or with no
// prior snapshot, the current ratings come back unchanged. Teams absent
// from the prior snapshot keep their unblended current rating.
func blendPrior(current models.RatingSet, prior models.RatingSet, week int, cfg config.RatingConfig) models.RatingSet {
	w1 := cfg.PriorFullWeightWeek
	w0 := cfg.PriorZeroWeightWeek

	if week >= w0 || prior == nil {
		return current
	}

	priorWeight := float64(w0-week) / float64(w0-w1)
	if priorWeight < 0 {
		priorWeight = 0
	}
	currentWeight := 1 - priorWeight
	shrink := cfg.PriorRegressionFactor

	blended := make(models.RatingSet, len(current))
	for team, cur := range current {
		prev, ok := prior[team]
		if !ok {
			blended[team] = cur
			continue
		}

		out := cur.Clone()
		out.OffEPA = currentWeight*cur.OffEPA + priorWeight*prev.OffEPA*shrink
		out.DefEPA = currentWeight*cur.DefEPA + priorWeight*prev.DefEPA*shrink
		out.TurnoverAdj = currentWeight*cur.TurnoverAdj + priorWeight*prev.TurnoverAdj*shrink
		out.STEPA = currentWeight*cur.STEPA + priorWeight*prev.STEPA*shrink
		blended[team] = out
	}

	return blended
}
