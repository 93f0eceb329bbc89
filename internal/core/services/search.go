package services

import (
	"context"
	"sort"
	"strings"

	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driven"
	"github.com/docquery/docquery/internal/logger"
)

// SearchService ranks corpus chunks against a query by unnormalized
// dot-product similarity. It scans every candidate chunk on every query;
// there is no index structure.
type SearchService struct {
	corpus   *domain.Corpus
	embedder driven.EmbeddingService
}

// NewSearchService creates a search service over a loaded corpus.
// The embedder may be nil; every search then returns empty results.
func NewSearchService(corpus *domain.Corpus, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{corpus: corpus, embedder: embedder}
}

// Search returns at most limit chunks ranked by descending similarity to
// the query. Chunks without an embedding, or not matching the optional
// filename filter, are skipped entirely - never scored as zero. Ties keep
// corpus order. Failures produce an empty result list, never an error.
func (s *SearchService) Search(ctx context.Context, query, filename string, limit int) []domain.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return []domain.SearchResult{}
	}
	if s.embedder == nil {
		logger.Debug("Search skipped: no embedding service")
		return []domain.SearchResult{}
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return []domain.SearchResult{}
	}

	chunks := s.corpus.Chunks()
	results := make([]domain.SearchResult, 0, len(chunks))
	for i := range chunks {
		if filename != "" && chunks[i].Filename != filename {
			continue
		}
		if !chunks[i].Embedding.Present() {
			continue
		}
		vec := chunks[i].Embedding.Values()
		if len(vec) != len(queryVec) {
			continue
		}
		results = append(results, domain.SearchResult{
			Filename:  chunks[i].Filename,
			Heading:   chunks[i].Heading,
			Content:   chunks[i].Content,
			Score:     dotProduct(queryVec, vec),
			SourceURL: chunks[i].SourceURL,
		})
	}

	// Stable: equal scores preserve corpus order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	logger.Debug("Search %q: %d results", query, len(results))
	return results
}

// dotProduct is the unnormalized inner product of two equal-length
// vectors, accumulated in float64.
func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
