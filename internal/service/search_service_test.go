package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vector, f.err
}

type fakeVectorSearcher struct {
	vectorRows  []map[string]any
	vectorErr   error
	keywordRows []map[string]any
	keywordErr  error

	gotLimit int
	gotTerms []string
}

func (f *fakeVectorSearcher) SearchByEmbedding(_ context.Context, _ pgvector.Vector, limit int) ([]map[string]any, error) {
	f.gotLimit = limit
	return f.vectorRows, f.vectorErr
}

func (f *fakeVectorSearcher) KeywordSearch(_ context.Context, terms []string, limit int) ([]map[string]any, error) {
	f.gotTerms = terms
	f.gotLimit = limit
	return f.keywordRows, f.keywordErr
}

func TestSearchVectorPath(t *testing.T) {
	repo := &fakeVectorSearcher{vectorRows: []map[string]any{
		{"id": 1, "name": "Wireless Mouse"},
	}}
	embedder := &fakeEmbedder{vector: make([]float32, 1024)}
	svc := NewSearchService(repo, embedder, 0, zap.NewNop())

	products := svc.Search(context.Background(), "wireless mouse", 5)

	require.Len(t, products, 1)
	assert.Equal(t, 5, repo.gotLimit)
	assert.Nil(t, repo.gotTerms, "keyword fallback must not run on the happy path")
}

func TestSearchFallsBackWhenEmbeddingFails(t *testing.T) {
	repo := &fakeVectorSearcher{keywordRows: []map[string]any{
		{"id": 2, "name": "Gaming Keyboard"},
	}}
	embedder := &fakeEmbedder{err: errors.New("embedding service unavailable")}
	svc := NewSearchService(repo, embedder, 0, zap.NewNop())

	products := svc.Search(context.Background(), "a red gaming keyboard", 10)

	require.Len(t, products, 1)
	assert.Equal(t, []string{"gaming", "keyboard"}, repo.gotTerms)
}

func TestSearchFallsBackWhenVectorQueryFails(t *testing.T) {
	repo := &fakeVectorSearcher{
		vectorErr:   errors.New("operator does not exist: vector <-> unknown"),
		keywordRows: []map[string]any{{"id": 3}},
	}
	embedder := &fakeEmbedder{vector: make([]float32, 1024)}
	svc := NewSearchService(repo, embedder, 0, zap.NewNop())

	products := svc.Search(context.Background(), "bluetooth speakers", 10)

	require.Len(t, products, 1)
	assert.Equal(t, []string{"bluetooth", "speakers"}, repo.gotTerms)
}

func TestSearchNeverRaises(t *testing.T) {
	repo := &fakeVectorSearcher{
		vectorErr:  errors.New("down"),
		keywordErr: errors.New("also down"),
	}
	embedder := &fakeEmbedder{err: errors.New("down too")}
	svc := NewSearchService(repo, embedder, 0, zap.NewNop())

	products := svc.Search(context.Background(), "anything", 10)

	require.NotNil(t, products)
	assert.Empty(t, products)
}

func TestSearchAppliesDefaultLimit(t *testing.T) {
	repo := &fakeVectorSearcher{}
	embedder := &fakeEmbedder{vector: make([]float32, 1024)}
	svc := NewSearchService(repo, embedder, 0, zap.NewNop())

	svc.Search(context.Background(), "lamps", 0)

	assert.Equal(t, defaultSearchLimit, repo.gotLimit)
}
