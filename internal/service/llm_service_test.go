package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sokoni/internal/nlsql"
	"sokoni/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "llama3-70b-8192",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestLLMService(baseURL string, mode nlsql.Mode) *LLMService {
	cfg := &config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "llama3-70b-8192",
	}
	return NewLLMService(cfg, mode, zap.NewNop())
}

func TestSynthesizeParsesModelJSON(t *testing.T) {
	content := `{"response": "Found some shoes for you!", "query": "SELECT p.id, p.name, p.image_url, p.description, p.price, p.rating, c.name AS category_name FROM products p JOIN categories c ON p.category = c.id WHERE p.name ILIKE '%shoe%' AND p.price < 50 LIMIT 10;"}`
	server := newMockCompletionServer(t, content, http.StatusOK)
	defer server.Close()

	svc := newTestLLMService(server.URL, nlsql.ModeSingle)
	intent, err := svc.Synthesize(context.Background(), "Show me cheap shoes", nil)

	require.NoError(t, err)
	assert.Equal(t, "Found some shoes for you!", intent.Response)
	assert.Contains(t, intent.Query(), "p.price < 50")
}

func TestSynthesizeRecoversFromMalformedCompletion(t *testing.T) {
	content := "Let me find those products for you right away!\n\n" +
		"SELECT p.id, p.name, p.image_url, p.description, p.price, p.rating, c.name AS category_name " +
		"FROM products p JOIN categories c ON p.category = c.id LIMIT 10"
	server := newMockCompletionServer(t, content, http.StatusOK)
	defer server.Close()

	svc := newTestLLMService(server.URL, nlsql.ModeSingle)
	intent, err := svc.Synthesize(context.Background(), "find products", nil)

	require.NoError(t, err)
	assert.Equal(t, "Let me find those products for you right away!", intent.Response)
	require.Len(t, intent.Queries, 1)
}

func TestSynthesizeUpstreamFailureYieldsDefaultIntent(t *testing.T) {
	server := newMockCompletionServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	svc := newTestLLMService(server.URL, nlsql.ModeSingle)
	intent, err := svc.Synthesize(context.Background(), "anything", nil)

	require.NoError(t, err, "upstream failures are recovered, not propagated")
	assert.Equal(t, nlsql.ApologyResponse, intent.Response)
	assert.Equal(t, nlsql.DefaultTopRatedQuery, intent.Query())
}

func TestSynthesizeDualModeReturnsTwoQueries(t *testing.T) {
	content := `{"response": "Two options!", "queries": ["SELECT * FROM products LIMIT 5"]}`
	server := newMockCompletionServer(t, content, http.StatusOK)
	defer server.Close()

	svc := newTestLLMService(server.URL, nlsql.ModeDual)
	intent, err := svc.Synthesize(context.Background(), "anything nice", nil)

	require.NoError(t, err)
	require.Len(t, intent.Queries, 2)
	assert.Equal(t, nlsql.DefaultRecentQuery, intent.Queries[1])
}

func TestSynthesizePropagatesContextCancellation(t *testing.T) {
	server := newMockCompletionServer(t, "{}", http.StatusOK)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestLLMService(server.URL, nlsql.ModeSingle)
	_, err := svc.Synthesize(ctx, "anything", nil)

	assert.Error(t, err)
}
