package rating

import "github.com/yourusername/gridiron-edge/internal/models"

// opponentAdjust removes opponent-strength bias from offensive and
// defensive figures by fixed-point iteration. Each pass recomputes every
// team against the previous pass's snapshot, never the one being built,
// so results do not depend on team iteration order. Turnover and special
// teams figures pass through unchanged.
//
// Opponents iterate with multiplicity: a twice-faced opponent counts
// twice in the schedule-strength mean. Opponents absent from the rating
// set are skipped, not treated as zero.
func opponentAdjust(raw models.RatingSet, iterations int) models.RatingSet {
	adjusted := make(models.RatingSet, len(raw))
	for team, r := range raw {
		adjusted[team] = r.Clone()
	}

	for iter := 0; iter < iterations; iter++ {
		next := make(models.RatingSet, len(raw))

		for team, r := range raw {
			if len(r.Opponents) == 0 {
				next[team] = r.Clone()
				continue
			}

			var oppDefSum, oppOffSum float64
			oppCount := 0
			for _, opp := range r.Opponents {
				prev, ok := adjusted[opp]
				if !ok {
					continue
				}
				oppDefSum += prev.DefEPA
				oppOffSum += prev.OffEPA
				oppCount++
			}

			avgOppDef := 0.0
			avgOppOff := 0.0
			if oppCount > 0 {
				avgOppDef = oppDefSum / float64(oppCount)
				avgOppOff = oppOffSum / float64(oppCount)
			}

			out := r.Clone()
			out.OffEPA = r.OffEPA - avgOppDef
			out.DefEPA = r.DefEPA + avgOppOff
			next[team] = out
		}

		adjusted = next
	}

	return adjusted
}
