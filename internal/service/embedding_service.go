package service

import (
	"context"
	"fmt"

	"sokoni/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// EmbeddingService converts text into fixed-length vectors through an
// OpenAI-compatible embeddings endpoint.
type EmbeddingService struct {
	client *openai.Client
	config *config.EmbeddingConfig
	logger *zap.Logger
}

func NewEmbeddingService(cfg *config.EmbeddingConfig, logger *zap.Logger) *EmbeddingService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &EmbeddingService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}
}

// Embed returns the embedding vector for the given text, or nil with an
// error when the service call fails or the vector has the wrong length.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.config.Model),
	})
	if err != nil {
		s.logger.Error("Failed to generate embedding", zap.Error(err))
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	embedding := resp.Data[0].Embedding
	if s.config.Dimensions > 0 && len(embedding) != s.config.Dimensions {
		return nil, fmt.Errorf("unexpected embedding dimensions: got %d, want %d",
			len(embedding), s.config.Dimensions)
	}
	return embedding, nil
}
