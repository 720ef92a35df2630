// Package news fetches team-scoped news from the external sports-data
// provider, classifies importance, and filters results down to what is worth
// surfacing in chat.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/pkg/cache"
	"sports-lore-chatbot/backend/pkg/logger"
)

// MaxItems caps the importance-filtered result set.
const MaxItems = 5

// feedArticleLimit bounds how many articles are considered per league feed.
const feedArticleLimit = 5

// playoffKeywords tag a headline as playoff-tier news.
var playoffKeywords = []string{"playoff", "championship", "finals", "wildcard"}

// leagueMap resolves a sport to its league feed. Unknown sports yield no
// news for that team rather than an error.
var leagueMap = map[string]string{
	"baseball":   "mlb",
	"football":   "nfl",
	"basketball": "nba",
	"hockey":     "nhl",
}

// Client fetches and classifies sports news
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Store
	cacheTTL   time.Duration
	log        *logger.Logger
}

// NewClient creates a news client. The cache store may be nil to disable
// feed caching.
func NewClient(baseURL string, httpClient *http.Client, store cache.Store, cacheTTL time.Duration, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cache:      store,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

// DefaultPreferences returns the built-in team preferences for a location.
// Only Seattle is configured; other locations get an empty team list.
func (c *Client) DefaultPreferences(location string) models.UserPreferences {
	if strings.EqualFold(location, "Seattle") {
		return models.UserPreferences{
			Location: location,
			Teams: []models.TeamPreference{
				{TeamName: "Seattle Mariners", TeamID: "12", Sport: "baseball", IsLocal: true},
				{TeamName: "Seattle Seahawks", TeamID: "26", Sport: "football", IsLocal: true},
			},
		}
	}
	return models.UserPreferences{Location: location, Teams: []models.TeamPreference{}}
}

// ImportantNews fetches news for every preferred team, keeps only playoff and
// local items, sorts playoff-first (stable within tier), and caps the result.
// A fetch failure for one team never aborts the others.
func (c *Client) ImportantNews(ctx context.Context, prefs models.UserPreferences) []models.NewsItem {
	perTeam := make([][]models.NewsItem, len(prefs.Teams))

	var wg sync.WaitGroup
	for i, team := range prefs.Teams {
		wg.Add(1)
		go func(i int, team models.TeamPreference) {
			defer wg.Done()
			items, err := c.fetchTeamNews(ctx, team)
			if err != nil {
				c.log.LogError(err, "failed to fetch team news", "team", team.TeamName)
				return
			}
			perTeam[i] = items
		}(i, team)
	}
	wg.Wait()

	var important []models.NewsItem
	for _, items := range perTeam {
		for _, item := range items {
			if item.Importance == models.ImportancePlayoff || item.Importance == models.ImportanceLocal {
				important = append(important, item)
			}
		}
	}

	sort.SliceStable(important, func(a, b int) bool {
		return rank(important[a].Importance) < rank(important[b].Importance)
	})

	if len(important) > MaxItems {
		important = important[:MaxItems]
	}
	return important
}

// ShouldNotify answers whether the news set warrants a proactive nudge:
// non-empty and containing at least one playoff item.
func (c *Client) ShouldNotify(ctx context.Context, prefs models.UserPreferences) (bool, []models.NewsItem) {
	items := c.ImportantNews(ctx, prefs)
	if len(items) == 0 {
		return false, items
	}
	for _, item := range items {
		if item.Importance == models.ImportancePlayoff {
			return true, items
		}
	}
	return false, items
}

func rank(importance string) int {
	if importance == models.ImportancePlayoff {
		return 0
	}
	return 1
}

type teamResponse struct {
	Team struct {
		DisplayName string `json:"displayName"`
	} `json:"team"`
}

type newsFeed struct {
	Articles []struct {
		Headline    string `json:"headline"`
		Description string `json:"description"`
		Published   string `json:"published"`
		Links       struct {
			Web struct {
				Href string `json:"href"`
			} `json:"web"`
		} `json:"links"`
	} `json:"articles"`
}

func (c *Client) fetchTeamNews(ctx context.Context, team models.TeamPreference) ([]models.NewsItem, error) {
	league, ok := leagueMap[strings.ToLower(team.Sport)]
	if !ok {
		return nil, nil
	}

	teamName := team.TeamName
	if meta, err := c.fetchTeamMetadata(ctx, league, team.TeamID); err != nil {
		return nil, err
	} else if meta.Team.DisplayName != "" {
		teamName = meta.Team.DisplayName
	}

	feed, err := c.fetchLeagueFeed(ctx, league)
	if err != nil {
		return nil, err
	}

	articles := feed.Articles
	if len(articles) > feedArticleLimit {
		articles = articles[:feedArticleLimit]
	}

	nameLower := strings.ToLower(teamName)
	var items []models.NewsItem
	for _, article := range articles {
		headlineLower := strings.ToLower(article.Headline)
		if !strings.Contains(headlineLower, nameLower) &&
			!strings.Contains(strings.ToLower(article.Description), nameLower) {
			continue
		}

		importance := models.ImportanceGeneral
		if team.IsLocal {
			importance = models.ImportanceLocal
		}
		for _, keyword := range playoffKeywords {
			if strings.Contains(headlineLower, keyword) {
				importance = models.ImportancePlayoff
				break
			}
		}

		items = append(items, models.NewsItem{
			Title:       article.Headline,
			Description: article.Description,
			Team:        teamName,
			Sport:       team.Sport,
			Importance:  importance,
			Link:        article.Links.Web.Href,
			Published:   article.Published,
		})
	}
	return items, nil
}

func (c *Client) fetchTeamMetadata(ctx context.Context, league, teamID string) (*teamResponse, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s/teams/%s", c.baseURL, league, teamID))
	if err != nil {
		return nil, err
	}
	var meta teamResponse
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("error unmarshaling team metadata: %w", err)
	}
	return &meta, nil
}

func (c *Client) fetchLeagueFeed(ctx context.Context, league string) (*newsFeed, error) {
	cacheKey := "news:feed:" + league

	var body []byte
	if c.cache != nil {
		if cached, found := c.cache.Get(ctx, cacheKey); found {
			body = []byte(cached)
		}
	}
	if body == nil {
		fetched, err := c.get(ctx, fmt.Sprintf("%s/%s/news", c.baseURL, league))
		if err != nil {
			return nil, err
		}
		body = fetched
		if c.cache != nil {
			c.cache.Set(ctx, cacheKey, string(body), c.cacheTTL)
		}
	}

	var feed newsFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("error unmarshaling news feed: %w", err)
	}
	return &feed, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sports provider returned status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
