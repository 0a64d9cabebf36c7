package datasource

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/config"
)

func TestSyntheticSeasonShape(t *testing.T) {
	src := NewSyntheticSource(DefaultSyntheticSeed, nil)

	games, err := src.FetchGames(context.Background(), 2024)
	require.NoError(t, err)
	assert.Len(t, games, 288) // 32 teams, 18 weeks, 16 games per week

	perWeek := make(map[int]int)
	for _, g := range games {
		perWeek[g.Week]++
		assert.Equal(t, g.HomeScore-g.AwayScore, g.Result)
		assert.GreaterOrEqual(t, g.HomeScore, 0)
		assert.GreaterOrEqual(t, g.AwayScore, 0)
		assert.NotEqual(t, g.HomeTeam, g.AwayTeam)
	}
	for week := 1; week <= 18; week++ {
		assert.Equal(t, 16, perWeek[week], "week %d", week)
	}
}

func TestSyntheticMarketLinesAreHalfPoints(t *testing.T) {
	src := NewSyntheticSource(DefaultSyntheticSeed, nil)

	games, err := src.FetchGames(context.Background(), 2023)
	require.NoError(t, err)
	for _, g := range games {
		require.True(t, g.HasSpreadLine())
		doubled := g.SpreadLine * 2
		assert.Equal(t, math.Trunc(doubled), doubled, "game %s line %v", g.GameID, g.SpreadLine)
	}
}

func TestSyntheticDeterminism(t *testing.T) {
	first, err := NewSyntheticSource(7, nil).FetchGames(context.Background(), 2024)
	require.NoError(t, err)
	second, err := NewSyntheticSource(7, nil).FetchGames(context.Background(), 2024)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		// CreatedAt is wall-clock; everything else must match.
		first[i].CreatedAt = time.Time{}
		second[i].CreatedAt = time.Time{}
		assert.Equal(t, first[i], second[i])
	}

	other, err := NewSyntheticSource(8, nil).FetchGames(context.Background(), 2024)
	require.NoError(t, err)
	other[0].CreatedAt = first[0].CreatedAt
	assert.NotEqual(t, first[0], other[0])
}

func TestSyntheticPassLogsAlignWithSchedule(t *testing.T) {
	src := NewSyntheticSource(DefaultSyntheticSeed, nil)

	games, err := src.FetchGames(context.Background(), 2024)
	require.NoError(t, err)
	logs, err := src.FetchPassLogs(context.Background(), 2024)
	require.NoError(t, err)

	// One primary log per side per game.
	assert.Len(t, logs, len(games)*2)

	gameTeams := make(map[string]map[string]bool)
	for _, g := range games {
		gameTeams[g.GameID] = map[string]bool{g.HomeTeam: true, g.AwayTeam: true}
	}
	changed := false
	for _, log := range logs {
		require.True(t, gameTeams[log.GameID][log.Team], "log references unknown game/team")
		assert.True(t, log.IsPrimary)
		assert.GreaterOrEqual(t, log.Attempts, 12)
		if log.PasserID == log.Team+"-QB2" {
			changed = true
		}
	}
	assert.True(t, changed, "expected at least one mid-season starter change")
}

const gamesCSV = `game_id,season,week,home_team,away_team,home_score,away_score,spread_line,home_off_epa_per_play,home_def_epa_per_play,away_off_epa_per_play,away_def_epa_per_play,home_turnovers,away_turnovers,home_st_epa_per_play,away_st_epa_per_play,home_plays,away_plays
2024_01_BUF_KC,2024,1,KC,BUF,27,20,2.5,0.15,-0.05,0.08,0.02,1,2,0.01,-0.01,63,58
2024_01_NYJ_NE,2024,1,NE,NYJ,13,17,NA,-0.02,0.04,0.01,-0.03,0,1,0.0,0.0,61,66
`

func TestNFLVerseFetchGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/game_epa/game_epa_2024.csv", r.URL.Path)
		w.Write([]byte(gamesCSV))
	}))
	defer server.Close()

	httpClient := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), nil)
	client := NewNFLVerseClient(httpClient, server.URL, true, discardLogger())

	games, err := client.FetchGames(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, games, 2)

	kc := games[0]
	assert.Equal(t, "2024_01_BUF_KC", kc.GameID)
	assert.Equal(t, "KC", kc.HomeTeam)
	assert.Equal(t, 7, kc.Result)
	assert.Equal(t, 2.5, kc.SpreadLine)
	assert.Equal(t, 63, kc.HomePlays)

	// "NA" market line maps to NaN, not zero.
	assert.False(t, games[1].HasSpreadLine())
}

func TestNFLVerseDisabled(t *testing.T) {
	client := NewNFLVerseClient(nil, "", false, discardLogger())

	_, err := client.FetchGames(context.Background(), 2024)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceDisabled)
}

func TestNFLVerseNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	httpClient := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), nil)
	client := NewNFLVerseClient(httpClient, server.URL, true, discardLogger())

	_, err := client.FetchGames(context.Background(), 1998)
	require.Error(t, err)
	var srcErr SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrCodeNotFound, srcErr.Code)
}

func TestParseSpreadLine(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		nan  bool
	}{
		{"2.5", 2.5, false},
		{"-7", -7, false},
		{"0.5", 0.5, false},
		{"", 0, true},
		{"NA", 0, true},
		{"garbage", 0, true},
	}
	for _, tt := range tests {
		got := parseSpreadLine(tt.in)
		if tt.nan {
			assert.True(t, math.IsNaN(got), "input %q", tt.in)
		} else {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestFactoryUnknownSource(t *testing.T) {
	f := NewFactory(discardLogger())
	_, err := f.NewDataSource(configFor("totally_made_up"), nil)
	assert.Error(t, err)
}

func TestFactorySynthetic(t *testing.T) {
	f := NewFactory(discardLogger())
	src, err := f.NewDataSource(configFor("synthetic"), nil)
	require.NoError(t, err)
	assert.Equal(t, "synthetic", src.Name())
	assert.True(t, src.IsEnabled())
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func configFor(name string) config.DataSourceConfig {
	return config.DataSourceConfig{Name: name, Enabled: true}
}
