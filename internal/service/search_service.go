package service

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher is the store-side half of similarity search.
type VectorSearcher interface {
	SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]map[string]any, error)
	KeywordSearch(ctx context.Context, terms []string, limit int) ([]map[string]any, error)
}

const defaultSearchLimit = 10

// SearchService ranks products by vector distance to the query text, with a
// keyword fallback when either the embedding or the vector query fails. It
// never returns an error: every failure degrades to a (possibly empty) list.
type SearchService struct {
	repo         VectorSearcher
	embedder     Embedder
	defaultLimit int
	logger       *zap.Logger
}

func NewSearchService(repo VectorSearcher, embedder Embedder, defaultLimit int, logger *zap.Logger) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = defaultSearchLimit
	}
	return &SearchService{
		repo:         repo,
		embedder:     embedder,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

func (s *SearchService) Search(ctx context.Context, queryText string, limit int) []map[string]any {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	embedding, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		s.logger.Warn("Embedding generation failed, falling back to keyword search",
			zap.Error(err),
			zap.String("query", queryText),
		)
		return s.keywordFallback(ctx, queryText, limit)
	}

	products, err := s.repo.SearchByEmbedding(ctx, pgvector.NewVector(embedding), limit)
	if err != nil {
		s.logger.Warn("Vector search failed, falling back to keyword search",
			zap.Error(err),
			zap.String("query", queryText),
		)
		return s.keywordFallback(ctx, queryText, limit)
	}
	return products
}

func (s *SearchService) keywordFallback(ctx context.Context, queryText string, limit int) []map[string]any {
	// Same >3-character token heuristic the parser's recovery path uses.
	// Terms are bound as parameters, so no quote escaping is needed here.
	var terms []string
	for _, word := range strings.Fields(queryText) {
		if len(word) > 3 {
			terms = append(terms, word)
		}
	}

	products, err := s.repo.KeywordSearch(ctx, terms, limit)
	if err != nil {
		s.logger.Error("Keyword fallback search failed", zap.Error(err))
		return []map[string]any{}
	}
	return products
}
