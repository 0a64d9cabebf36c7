package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

const defaultNFLVerseBaseURL = "https://github.com/nflverse/nflverse-data/releases/download"

// NFLVerseClient implements GameDataSource over the nflverse release
// CSVs: per-game EPA aggregates plus per-game passer logs. Files are
// keyed by season, one fetch per season.
type NFLVerseClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	logger     *logrus.Logger
}

// NewNFLVerseClient creates a new nflverse release client. Pass an
// empty baseURL to use the public release location.
func NewNFLVerseClient(httpClient *RateLimitedHTTPClient, baseURL string, enabled bool, logger *logrus.Logger) *NFLVerseClient {
	if baseURL == "" {
		baseURL = defaultNFLVerseBaseURL
	}
	return &NFLVerseClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *NFLVerseClient) Name() string {
	return "nflverse"
}

// IsEnabled returns whether this data source is enabled
func (c *NFLVerseClient) IsEnabled() bool {
	return c.enabled
}

// FetchGames retrieves the season's per-game EPA aggregate CSV.
func (c *NFLVerseClient) FetchGames(ctx context.Context, season int) ([]models.Game, error) {
	rows, err := c.fetchCSV(ctx, fmt.Sprintf("%s/game_epa/game_epa_%d.csv", c.baseURL, season))
	if err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(rows.records))
	for i, record := range rows.records {
		game, err := parseGameRow(rows.columns, record)
		if err != nil {
			c.logger.WithError(err).WithField("row", i+2).Warn("Skipping malformed game row")
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

// FetchPassLogs retrieves the season's per-game passer log CSV.
func (c *NFLVerseClient) FetchPassLogs(ctx context.Context, season int) ([]models.PassLog, error) {
	rows, err := c.fetchCSV(ctx, fmt.Sprintf("%s/pass_logs/pass_logs_%d.csv", c.baseURL, season))
	if err != nil {
		return nil, err
	}

	logs := make([]models.PassLog, 0, len(rows.records))
	for i, record := range rows.records {
		log, err := parsePassLogRow(rows.columns, record)
		if err != nil {
			c.logger.WithError(err).WithField("row", i+2).Warn("Skipping malformed pass log row")
			continue
		}
		logs = append(logs, log)
	}
	return logs, nil
}

type csvRows struct {
	columns map[string]int
	records [][]string
}

func (c *NFLVerseClient) fetchCSV(ctx context.Context, url string) (*csvRows, error) {
	if !c.enabled {
		return nil, NewSourceError(c.Name(), ErrCodeDisabled, "data source disabled", ErrSourceDisabled)
	}

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewSourceError(c.Name(), ErrCodeNetworkError, "failed to fetch "+url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewSourceError(c.Name(), ErrCodeNotFound, "release file not found: "+url, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewSourceError(c.Name(), ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewSourceError(c.Name(), ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	reader := csv.NewReader(resp.Body)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		return nil, NewSourceError(c.Name(), ErrCodeInvalidData, "failed to read CSV header", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewSourceError(c.Name(), ErrCodeInvalidData, "failed to read CSV body", err)
	}
	return &csvRows{columns: columns, records: records}, nil
}

func parseGameRow(columns map[string]int, record []string) (models.Game, error) {
	field := func(name string) (string, error) {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return "", fmt.Errorf("missing column %q", name)
		}
		return record[idx], nil
	}
	intField := func(name string) (int, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(s)
	}
	floatField := func(name string) (float64, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(s, 64)
	}

	var game models.Game
	var err error
	if game.GameID, err = field("game_id"); err != nil {
		return game, err
	}
	if game.Season, err = intField("season"); err != nil {
		return game, err
	}
	if game.Week, err = intField("week"); err != nil {
		return game, err
	}
	if game.HomeTeam, err = field("home_team"); err != nil {
		return game, err
	}
	if game.AwayTeam, err = field("away_team"); err != nil {
		return game, err
	}
	if game.HomeScore, err = intField("home_score"); err != nil {
		return game, err
	}
	if game.AwayScore, err = intField("away_score"); err != nil {
		return game, err
	}
	if game.HomeOffEPA, err = floatField("home_off_epa_per_play"); err != nil {
		return game, err
	}
	if game.HomeDefEPA, err = floatField("home_def_epa_per_play"); err != nil {
		return game, err
	}
	if game.AwayOffEPA, err = floatField("away_off_epa_per_play"); err != nil {
		return game, err
	}
	if game.AwayDefEPA, err = floatField("away_def_epa_per_play"); err != nil {
		return game, err
	}
	if game.HomeTurnovers, err = intField("home_turnovers"); err != nil {
		return game, err
	}
	if game.AwayTurnovers, err = intField("away_turnovers"); err != nil {
		return game, err
	}
	if game.HomeSTEPA, err = floatField("home_st_epa_per_play"); err != nil {
		return game, err
	}
	if game.AwaySTEPA, err = floatField("away_st_epa_per_play"); err != nil {
		return game, err
	}
	if game.HomePlays, err = intField("home_plays"); err != nil {
		return game, err
	}
	if game.AwayPlays, err = intField("away_plays"); err != nil {
		return game, err
	}

	game.Result = game.HomeScore - game.AwayScore

	spread, err := field("spread_line")
	if err != nil {
		return game, err
	}
	game.SpreadLine = parseSpreadLine(spread)
	game.CreatedAt = time.Now().UTC()
	return game, nil
}

// parseSpreadLine parses a market line. Lines arrive as exact decimal
// strings ("-3.5", "7", "0.5"); empty or "NA" means the game carried no
// line and maps to NaN.
func parseSpreadLine(s string) float64 {
	if s == "" || s == "NA" || s == "NaN" {
		return math.NaN()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return math.NaN()
	}
	f, _ := d.Float64()
	return f
}

func parsePassLogRow(columns map[string]int, record []string) (models.PassLog, error) {
	field := func(name string) (string, error) {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return "", fmt.Errorf("missing column %q", name)
		}
		return record[idx], nil
	}

	var log models.PassLog
	var err error
	if log.GameID, err = field("game_id"); err != nil {
		return log, err
	}
	if log.Team, err = field("team"); err != nil {
		return log, err
	}
	if log.PasserID, err = field("passer_player_id"); err != nil {
		return log, err
	}
	if log.PasserName, err = field("passer_player_name"); err != nil {
		return log, err
	}

	for name, dst := range map[string]*int{
		"season": &log.Season, "week": &log.Week, "attempts": &log.Attempts,
	} {
		s, err := field(name)
		if err != nil {
			return log, err
		}
		if *dst, err = strconv.Atoi(s); err != nil {
			return log, fmt.Errorf("column %q: %w", name, err)
		}
	}
	for name, dst := range map[string]*float64{
		"qb_epa_per_play": &log.EPAPerPlay, "total_epa": &log.TotalEPA,
	} {
		s, err := field(name)
		if err != nil {
			return log, err
		}
		if *dst, err = strconv.ParseFloat(s, 64); err != nil {
			return log, fmt.Errorf("column %q: %w", name, err)
		}
	}

	primary, err := field("is_primary")
	if err != nil {
		return log, err
	}
	log.IsPrimary = primary == "true" || primary == "True" || primary == "1"
	return log, nil
}
