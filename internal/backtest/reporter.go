package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// GenerateConsoleReport formats a backtest run for terminal output
func GenerateConsoleReport(edges []models.Edge, summary Summary) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Bets: %d (W %d / L %d / P %d)\n",
		summary.TotalBets, summary.Wins, summary.Losses, summary.Pushes))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%% (breakeven %.2f%%)\n", summary.WinPct, summary.Breakeven))
	builder.WriteString(fmt.Sprintf("ROI: %.2f%%\n", summary.ROI))
	builder.WriteString(fmt.Sprintf("Average Edge: %.1f\n", summary.AvgEdge))

	bySeason := SummarizeBySeason(edges)
	if len(bySeason) > 1 {
		seasons := make([]int, 0, len(bySeason))
		for season := range bySeason {
			seasons = append(seasons, season)
		}
		sort.Ints(seasons)
		builder.WriteString("\nBy Season\n")
		builder.WriteString("---------\n")
		for _, season := range seasons {
			s := bySeason[season]
			builder.WriteString(fmt.Sprintf("%d: %d-%d (%.1f%%), ROI %.2f%%\n",
				season, s.Wins, s.Losses, s.WinPct, s.ROI))
		}
	}

	buckets := BucketByEdge(edges)
	builder.WriteString("\nBy Edge Size\n")
	builder.WriteString("------------\n")
	for _, b := range buckets {
		if b.Bets == 0 {
			builder.WriteString(fmt.Sprintf("%s: no bets\n", b.Label))
			continue
		}
		builder.WriteString(fmt.Sprintf("%s: %d-%d (%.1f%%), ROI %.2f%%\n",
			b.Label, b.Wins, b.Losses, b.WinPct, b.ROI))
	}
	return builder.String()
}

// GenerateBetLog formats every flagged edge one-per-line, newest last
func GenerateBetLog(edges []models.Edge) string {
	var builder strings.Builder
	for _, e := range edges {
		builder.WriteString(fmt.Sprintf("%d wk%-2d %s @ %s  model %+.1f market %+.1f edge %.1f  bet %s  %s\n",
			e.Season, e.Week, e.AwayTeam, e.HomeTeam,
			e.ModelSpread, e.MarketSpread, e.Edge, e.BetSide, e.Outcome))
	}
	return builder.String()
}

// GenerateCSVExport exports flagged edges for spreadsheets
func GenerateCSVExport(edges []models.Edge, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var builder strings.Builder
	builder.WriteString("season,week,home_team,away_team,model_spread,market_spread,edge,bet_side,actual_result,outcome\n")
	for _, e := range edges {
		builder.WriteString(fmt.Sprintf("%d,%d,%s,%s,%.1f,%.1f,%.1f,%s,%d,%s\n",
			e.Season, e.Week, e.HomeTeam, e.AwayTeam,
			e.ModelSpread, e.MarketSpread, e.Edge, e.BetSide, e.ActualResult, e.Outcome))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
