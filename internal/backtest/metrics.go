package backtest

import (
	"encoding/json"

	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// breakevenPct is the win percentage needed to profit at -110 pricing.
const breakevenPct = 52.38

// Summary aggregates graded edges into backtest performance figures.
// Win percentage and ROI are derived at aggregation time, never stored
// alongside the raw edge set.
type Summary struct {
	TotalBets int     `json:"total_bets"` // decided bets; pushes excluded
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Pushes    int     `json:"pushes"`
	WinPct    float64 `json:"win_pct"`
	Breakeven float64 `json:"breakeven"`
	ROI       float64 `json:"roi"` // percent, at standard -110 juice
	AvgEdge   float64 `json:"avg_edge"`
}

// EdgeBucket reports performance within one edge-magnitude range.
type EdgeBucket struct {
	Label  string  `json:"label"`
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Bets   int     `json:"bets"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	WinPct float64 `json:"win_pct"`
	ROI    float64 `json:"roi"`
}

// Summarize computes the performance summary over a set of graded
// edges and updates the backtest gauges. Pushes are counted but
// excluded from the record and ROI.
func Summarize(edges []models.Edge) Summary {
	s := summarize(edges)
	metrics.LastBacktestWinRate.Set(s.WinPct)
	metrics.LastBacktestROI.Set(s.ROI)
	return s
}

func summarize(edges []models.Edge) Summary {
	s := Summary{Breakeven: breakevenPct}

	edgeSum := 0.0
	for _, e := range edges {
		switch e.Outcome {
		case models.OutcomeWon:
			s.Wins++
		case models.OutcomeLost:
			s.Losses++
		case models.OutcomePush:
			s.Pushes++
			continue
		}
		edgeSum += e.Edge
	}

	s.TotalBets = s.Wins + s.Losses
	if s.TotalBets > 0 {
		s.WinPct = float64(s.Wins) / float64(s.TotalBets) * 100
		s.ROI = roiAt110(s.Wins, s.Losses)
		s.AvgEdge = edgeSum / float64(s.TotalBets)
	}
	return s
}

// BucketByEdge splits decided edges into magnitude ranges and
// summarizes each. Ranges are half-open [low, high).
func BucketByEdge(edges []models.Edge) []EdgeBucket {
	buckets := []EdgeBucket{
		{Label: "5-8 pts", Low: 5, High: 8},
		{Label: "8+ pts", Low: 8, High: 99},
	}

	for _, e := range edges {
		if !e.Outcome.Decided() {
			continue
		}
		for i := range buckets {
			if e.Edge >= buckets[i].Low && e.Edge < buckets[i].High {
				buckets[i].Bets++
				if e.Outcome == models.OutcomeWon {
					buckets[i].Wins++
				} else {
					buckets[i].Losses++
				}
			}
		}
	}

	for i := range buckets {
		if buckets[i].Bets > 0 {
			buckets[i].WinPct = float64(buckets[i].Wins) / float64(buckets[i].Bets) * 100
			buckets[i].ROI = roiAt110(buckets[i].Wins, buckets[i].Losses)
		}
	}
	return buckets
}

// SummarizeBySeason groups edges by season and summarizes each group.
func SummarizeBySeason(edges []models.Edge) map[int]Summary {
	bySeason := make(map[int][]models.Edge)
	for _, e := range edges {
		bySeason[e.Season] = append(bySeason[e.Season], e)
	}
	out := make(map[int]Summary, len(bySeason))
	for season, group := range bySeason {
		out[season] = summarize(group)
	}
	return out
}

// roiAt110 computes percent return on investment laying 110 to win 100.
func roiAt110(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	profit := float64(wins)*100 - float64(losses)*110
	return profit / (float64(total) * 110) * 100
}

// ToJSON exports the summary to JSON.
func (s Summary) ToJSON() string {
	data, _ := json.Marshal(s)
	return string(data)
}
