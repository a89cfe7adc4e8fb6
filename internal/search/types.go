package search

import "worklens/internal/chunk"

// MatchType tags how a query term matched a chunk.
type MatchType string

const (
	// MatchExact means the term occurred as a case-insensitive substring.
	MatchExact MatchType = "exact"
	// MatchFuzzy means no exact occurrence existed but at least one chunk
	// token was within edit distance 2 of the term.
	MatchFuzzy MatchType = "fuzzy"
)

// Match records a query term that contributed to a chunk's score.
type Match struct {
	Term string    `json:"term"`
	Type MatchType `json:"type"`
}

// Result is a single ranked search hit.
type Result struct {
	Chunk   chunk.Chunk `json:"chunk"`
	Score   float64     `json:"score"`
	Matches []Match     `json:"matches"`
}
