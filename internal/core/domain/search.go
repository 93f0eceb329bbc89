package domain

// Result caps for the search operation. Callers asking for fewer than
// MinSearchResults are raised to the minimum, more than MaxSearchResults
// are capped.
const (
	MinSearchResults     = 1
	MaxSearchResults     = 20
	DefaultSearchResults = 5
)

// SearchResult is one ranked hit: a chunk projection plus its similarity
// score. Scores are unnormalized dot products with no fixed range; only
// relative ordering is meaningful.
type SearchResult struct {
	Filename  string  `json:"filename"`
	Heading   string  `json:"heading"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
	SourceURL string  `json:"source_url,omitempty"`
}

// ClampMaxResults normalizes a caller-supplied result cap into
// [MinSearchResults, MaxSearchResults].
func ClampMaxResults(n int) int {
	if n < MinSearchResults {
		return MinSearchResults
	}
	if n > MaxSearchResults {
		return MaxSearchResults
	}
	return n
}
