// Package search holds per-collection chunk sets and answers ranked
// free-text queries over them using BM25 blended with edit-distance fuzzy
// matching.
package search

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"worklens/internal/chunk"
)

// BM25 parameters. k1 controls term-frequency saturation, b controls
// document-length normalization.
const (
	bm25K1 = 1.2
	bm25B  = 0.75

	// titleBoost is added once per query term found in a chunk title.
	titleBoost = 2.0
	// collectionBoost multiplies the final score of chunks belonging to
	// the requested collection.
	collectionBoost = 1.5
)

// Index owns all chunk data, keyed by collection ID. A collection's chunk
// list is replaced wholesale on re-indexing and removed wholesale on clear.
// Every mutation snapshots the full index to disk; the snapshot is loaded
// back at startup. All operations are safe for concurrent use.
type Index struct {
	mu           sync.Mutex
	collections  map[string][]chunk.Chunk
	snapshotPath string
	logger       *slog.Logger
}

// New creates an empty index that persists to snapshotPath. Call Load to
// restore a previous snapshot.
func New(snapshotPath string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		collections:  make(map[string][]chunk.Chunk),
		snapshotPath: snapshotPath,
		logger:       logger,
	}
}

// Index replaces the entire chunk list for a collection and persists the
// full index. Persistence failures are logged, never surfaced: the index
// keeps operating in memory.
func (ix *Index) Index(collectionID string, chunks []chunk.Chunk) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.collections[collectionID] = chunks
	ix.saveLocked()
	ix.logger.Debug("indexed collection", "collection", collectionID, "chunks", len(chunks))
}

// Clear removes a collection entirely and persists the index.
func (ix *Index) Clear(collectionID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	delete(ix.collections, collectionID)
	ix.saveLocked()
	ix.logger.Debug("cleared collection", "collection", collectionID)
}

// Collections returns the known collection IDs in sorted order.
func (ix *Index) Collections() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.sortedIDsLocked()
}

// Size returns the total number of indexed chunks across all collections.
func (ix *Index) Size() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	total := 0
	for _, chunks := range ix.collections {
		total += len(chunks)
	}
	return total
}

func (ix *Index) sortedIDsLocked() []string {
	ids := make([]string, 0, len(ix.collections))
	for id := range ix.collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// candidatesLocked assembles the candidate chunk list for a query. A known
// collection ID puts that collection's chunks first so the search stays
// global but the target can be boosted; otherwise all chunks participate
// in collection-ID order.
func (ix *Index) candidatesLocked(collectionID string) []chunk.Chunk {
	var candidates []chunk.Chunk

	_, known := ix.collections[collectionID]
	if collectionID != "" && known {
		candidates = append(candidates, ix.collections[collectionID]...)
	}
	for _, id := range ix.sortedIDsLocked() {
		if collectionID != "" && known && id == collectionID {
			continue
		}
		candidates = append(candidates, ix.collections[id]...)
	}
	return candidates
}

// Search tokenizes the query, scores every candidate chunk, and returns the
// top limit results sorted by descending score. An empty query, an empty
// index, or a query matching nothing yields an empty result set, never an
// error. A limit <= 0 returns all matching chunks.
func (ix *Index) Search(collectionID, query string, limit int) []Result {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	candidates := ix.candidatesLocked(collectionID)
	terms := Tokenize(query)
	if len(candidates) == 0 || len(terms) == 0 {
		return nil
	}

	totalLen := 0
	for _, c := range candidates {
		totalLen += utf8.RuneCountInString(c.Content)
	}
	avgLen := float64(totalLen) / float64(len(candidates))
	if avgLen == 0 {
		avgLen = 1
	}

	// Document frequency per term: candidates containing the term as a
	// case-insensitive substring.
	n := float64(len(candidates))
	idf := make(map[string]float64, len(terms))
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c.Content)
	}
	for _, term := range terms {
		df := 0
		for _, content := range lowered {
			if strings.Contains(content, term) {
				df++
			}
		}
		idf[term] = math.Log(1 + (n-float64(df)+0.5)/(float64(df)+0.5))
	}

	var results []Result
	for i, c := range candidates {
		docLen := float64(utf8.RuneCountInString(c.Content))
		score := 0.0
		var matches []Match
		var chunkTokens []string
		tokenized := false

		for _, term := range terms {
			termFreq := strings.Count(lowered[i], term)
			matchType := MatchExact

			// Fuzzy matching only runs when no exact occurrence exists.
			if termFreq == 0 {
				if !tokenized {
					chunkTokens = Tokenize(c.Content)
					tokenized = true
				}
				for _, token := range chunkTokens {
					if levenshtein(token, term) <= fuzzyDistance {
						termFreq++
					}
				}
				matchType = MatchFuzzy
			}

			if termFreq == 0 {
				continue
			}

			tf := float64(termFreq)
			score += idf[term] * tf * (bm25K1 + 1) /
				(tf + bm25K1*(1-bm25B+bm25B*docLen/avgLen))
			matches = append(matches, Match{Term: term, Type: matchType})
		}

		title := strings.ToLower(c.Title)
		for _, term := range terms {
			if strings.Contains(title, term) {
				score += titleBoost
			}
		}

		if collectionID != "" && c.CollectionID == collectionID {
			score *= collectionBoost
		}

		if score > 0 {
			results = append(results, Result{Chunk: c, Score: score, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
