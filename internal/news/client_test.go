package news

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/pkg/cache"
	"sports-lore-chatbot/backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})
}

func writeTeam(w http.ResponseWriter, displayName string) {
	json.NewEncoder(w).Encode(map[string]any{
		"team": map[string]any{"displayName": displayName},
	})
}

func writeFeed(w http.ResponseWriter, headlines ...string) {
	articles := make([]map[string]any, len(headlines))
	for i, headline := range headlines {
		articles[i] = map[string]any{
			"headline":    headline,
			"description": "details about " + headline,
			"published":   "2026-08-30T12:00:00Z",
			"links":       map[string]any{"web": map[string]any{"href": "https://example.com/story"}},
		}
	}
	json.NewEncoder(w).Encode(map[string]any{"articles": articles})
}

func marinersPref() models.TeamPreference {
	return models.TeamPreference{TeamName: "Seattle Mariners", TeamID: "12", Sport: "baseball", IsLocal: true}
}

func TestDefaultPreferences(t *testing.T) {
	client := NewClient("http://unused", nil, nil, 0, testLogger())

	prefs := client.DefaultPreferences("seattle")
	require.Len(t, prefs.Teams, 2)
	assert.Equal(t, "Seattle Mariners", prefs.Teams[0].TeamName)
	assert.Equal(t, "baseball", prefs.Teams[0].Sport)
	assert.True(t, prefs.Teams[0].IsLocal)
	assert.Equal(t, "Seattle Seahawks", prefs.Teams[1].TeamName)

	empty := client.DefaultPreferences("Portland")
	assert.Equal(t, "Portland", empty.Location)
	assert.Empty(t, empty.Teams)
}

func TestImportantNewsFiltersAndSorts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mlb/teams/12", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Seattle Mariners")
	})
	mux.HandleFunc("/mlb/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w,
			"Seattle Mariners clinch playoff berth",
			"Seattle Mariners trade for a starting pitcher",
			"League announces schedule changes",
		)
	})
	mux.HandleFunc("/nfl/teams/17", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "New England Patriots")
	})
	mux.HandleFunc("/nfl/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w,
			"New England Patriots sign a kicker",
			"New England Patriots win championship game",
		)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil, 0, testLogger())
	items := client.ImportantNews(context.Background(), models.UserPreferences{
		Location: "Seattle",
		Teams: []models.TeamPreference{
			marinersPref(),
			{TeamName: "New England Patriots", TeamID: "17", Sport: "football", IsLocal: false},
		},
	})

	// playoff before local; the non-local kicker signing is dropped entirely
	require.Len(t, items, 3)
	assert.Equal(t, "Seattle Mariners clinch playoff berth", items[0].Title)
	assert.Equal(t, models.ImportancePlayoff, items[0].Importance)
	assert.Equal(t, "New England Patriots win championship game", items[1].Title)
	assert.Equal(t, models.ImportancePlayoff, items[1].Importance)
	assert.Equal(t, "Seattle Mariners trade for a starting pitcher", items[2].Title)
	assert.Equal(t, models.ImportanceLocal, items[2].Importance)

	assert.Equal(t, "Seattle Mariners", items[0].Team)
	assert.Equal(t, "baseball", items[0].Sport)
	assert.Equal(t, "https://example.com/story", items[0].Link)
}

func TestImportantNewsCapsResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mlb/teams/12", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Seattle Mariners")
	})
	mux.HandleFunc("/mlb/teams/13", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Texas Rangers")
	})
	mux.HandleFunc("/mlb/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w,
			"Seattle Mariners edge Texas Rangers in opener",
			"Texas Rangers rally past Seattle Mariners",
			"Seattle Mariners and Texas Rangers split doubleheader",
		)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil, 0, testLogger())
	items := client.ImportantNews(context.Background(), models.UserPreferences{
		Teams: []models.TeamPreference{
			marinersPref(),
			{TeamName: "Texas Rangers", TeamID: "13", Sport: "baseball", IsLocal: true},
		},
	})

	// both teams match all three articles, capped at MaxItems
	assert.Len(t, items, MaxItems)
}

func TestImportantNewsTeamFailureIsolated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mlb/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	})
	mux.HandleFunc("/nfl/teams/26", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Seattle Seahawks")
	})
	mux.HandleFunc("/nfl/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w, "Seattle Seahawks open training camp")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil, 0, testLogger())
	items := client.ImportantNews(context.Background(), models.UserPreferences{
		Teams: []models.TeamPreference{
			marinersPref(),
			{TeamName: "Seattle Seahawks", TeamID: "26", Sport: "football", IsLocal: true},
		},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Seattle Seahawks open training camp", items[0].Title)
}

func TestImportantNewsUnknownSport(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil, 0, testLogger())
	items := client.ImportantNews(context.Background(), models.UserPreferences{
		Teams: []models.TeamPreference{
			{TeamName: "Seattle Storm", TeamID: "99", Sport: "cricket", IsLocal: true},
		},
	})

	assert.Empty(t, items)
	assert.Equal(t, int64(0), hits.Load())
}

func TestShouldNotify(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mlb/teams/12", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Seattle Mariners")
	})
	mux.HandleFunc("/mlb/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w, "Seattle Mariners clinch wildcard spot")
	})
	mux.HandleFunc("/nfl/teams/26", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Seattle Seahawks")
	})
	mux.HandleFunc("/nfl/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w, "Seattle Seahawks announce roster moves")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil, 0, testLogger())
	ctx := context.Background()

	// playoff item present
	notify, items := client.ShouldNotify(ctx, models.UserPreferences{
		Teams: []models.TeamPreference{marinersPref()},
	})
	assert.True(t, notify)
	require.Len(t, items, 1)

	// local news only
	notify, items = client.ShouldNotify(ctx, models.UserPreferences{
		Teams: []models.TeamPreference{
			{TeamName: "Seattle Seahawks", TeamID: "26", Sport: "football", IsLocal: true},
		},
	})
	assert.False(t, notify)
	assert.Len(t, items, 1)

	// no teams, no news
	notify, items = client.ShouldNotify(ctx, models.UserPreferences{})
	assert.False(t, notify)
	assert.Empty(t, items)
}

func TestLeagueFeedCached(t *testing.T) {
	var feedHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/mlb/teams/12", func(w http.ResponseWriter, r *http.Request) {
		writeTeam(w, "Seattle Mariners")
	})
	mux.HandleFunc("/mlb/news", func(w http.ResponseWriter, r *http.Request) {
		feedHits.Add(1)
		writeFeed(w, "Seattle Mariners win again")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := cache.NewMemory(time.Minute)
	client := NewClient(server.URL, server.Client(), store, time.Minute, testLogger())
	prefs := models.UserPreferences{Teams: []models.TeamPreference{marinersPref()}}

	first := client.ImportantNews(context.Background(), prefs)
	second := client.ImportantNews(context.Background(), prefs)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), feedHits.Load())
}

func TestTeamNameFallsBackToPreference(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mlb/teams/12", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})
	mux.HandleFunc("/mlb/news", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w, "Seattle Mariners stay hot")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil, 0, testLogger())
	items := client.ImportantNews(context.Background(), models.UserPreferences{
		Teams: []models.TeamPreference{marinersPref()},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Seattle Mariners", items[0].Team)
}
