package models

// News importance tiers, most significant first
const (
	ImportancePlayoff = "playoff"
	ImportanceLocal   = "local"
	ImportanceGeneral = "general"
)

// NewsItem is a single fetched article, scoped to the request that fetched it
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Team        string `json:"team"`
	Sport       string `json:"sport"`
	Importance  string `json:"importance"`
	Link        string `json:"link,omitempty"`
	Published   string `json:"published,omitempty"`
}
