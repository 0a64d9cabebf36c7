package rating

import "github.com/yourusername/gridiron-edge/internal/models"

// recencyWeights assigns each game an exponentially decaying weight
// relative to the cutoff week: decay^weeksAgo. A game played in the
// cutoff week itself gets weight 1.0. Games after the cutoff are
// excluded upstream, so weeksAgo is never negative.
func recencyWeights(views []models.TeamGameView, currentWeek int, decay float64) []float64 {
	weights := make([]float64, len(views))
	for i, v := range views {
		weeksAgo := currentWeek - v.Week
		w := 1.0
		for n := 0; n < weeksAgo; n++ {
			w *= decay
		}
		weights[i] = w
	}
	return weights
}

// weightedMean computes the weighted arithmetic mean. Zero total weight
// yields 0.
func weightedMean(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}
	sum := 0.0
	totalWeight := 0.0
	for i, v := range values {
		sum += v * weights[i]
		totalWeight += weights[i]
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}
