package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sokoni/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockEmbeddingServer(t *testing.T, dimensions int, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"object": "list",
			"model":  "embed-english-v3.0",
			"data": []map[string]any{
				{
					"object":    "embedding",
					"index":     0,
					"embedding": make([]float32, dimensions),
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestEmbeddingService(baseURL string, dimensions int) *EmbeddingService {
	cfg := &config.EmbeddingConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "embed-english-v3.0",
		Dimensions: dimensions,
	}
	return NewEmbeddingService(cfg, zap.NewNop())
}

func TestEmbedReturnsVector(t *testing.T) {
	server := newMockEmbeddingServer(t, 1024, http.StatusOK)
	defer server.Close()

	svc := newTestEmbeddingService(server.URL, 1024)
	vector, err := svc.Embed(context.Background(), "wireless mouse")

	require.NoError(t, err)
	assert.Len(t, vector, 1024)
}

func TestEmbedServiceFailure(t *testing.T) {
	server := newMockEmbeddingServer(t, 0, http.StatusBadGateway)
	defer server.Close()

	svc := newTestEmbeddingService(server.URL, 1024)
	vector, err := svc.Embed(context.Background(), "anything")

	assert.Error(t, err)
	assert.Nil(t, vector)
}

func TestEmbedRejectsWrongDimensionality(t *testing.T) {
	server := newMockEmbeddingServer(t, 8, http.StatusOK)
	defer server.Close()

	svc := newTestEmbeddingService(server.URL, 1024)
	vector, err := svc.Embed(context.Background(), "anything")

	assert.Error(t, err)
	assert.Nil(t, vector)
}
