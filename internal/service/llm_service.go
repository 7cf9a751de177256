package service

import (
	"context"

	"sokoni/internal/nlsql"
	"sokoni/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Message is one turn of a conversation, threaded back into the model call.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LLMService synthesizes product-search SQL from natural language through an
// OpenAI-compatible chat-completion endpoint (Groq by default). Upstream
// failures never escape: they degrade into the canned default intent.
type LLMService struct {
	client *openai.Client
	config *config.GroqConfig
	mode   nlsql.Mode
	logger *zap.Logger
}

func NewLLMService(cfg *config.GroqConfig, mode nlsql.Mode, logger *zap.Logger) *LLMService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &LLMService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		mode:   mode,
		logger: logger,
	}
}

// Synthesize sends the user message plus conversation history to the model
// and returns the parsed intent. The returned error is non-nil only when the
// context is done; every other failure mode is recovered locally.
func (s *LLMService) Synthesize(ctx context.Context, message string, history []Message) (nlsql.Intent, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: nlsql.SystemPrompt(s.mode),
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nlsql.Intent{}, ctx.Err()
		}
		s.logger.Error("Chat completion failed, using default intent", zap.Error(err))
		return nlsql.DefaultIntent(s.mode), nil
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("Chat completion returned no choices, using default intent")
		return nlsql.DefaultIntent(s.mode), nil
	}

	content := resp.Choices[0].Message.Content
	s.logger.Debug("Raw model completion", zap.String("content", truncate(content, 300)))

	intent := nlsql.ParseCompletion(content, message, s.mode)
	s.logger.Info("Synthesized SQL from user message",
		zap.String("query", intent.Query()),
		zap.Int("candidates", len(intent.Queries)),
	)
	return intent, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
