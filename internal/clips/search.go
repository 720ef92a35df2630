package clips

import "strings"

// Search returns clips whose keywords appear as substrings of the query.
// Matching is case-insensitive and deliberately substring-based rather than
// word-boundary: "raptors2019" still matches "raptors". The first matching
// keyword wins per clip, corpus order breaks ties, and at most maxResults
// clips are returned.
func (c *Corpus) Search(query string, maxResults int) []Clip {
	queryLower := strings.ToLower(query)

	var matches []Clip
	for _, clip := range c.clips {
		for _, keyword := range clip.Keywords {
			if strings.Contains(queryLower, strings.ToLower(keyword)) {
				matches = append(matches, clip)
				break
			}
		}
		if maxResults > 0 && len(matches) >= maxResults {
			break
		}
	}
	return matches
}
