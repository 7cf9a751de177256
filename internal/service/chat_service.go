package service

import (
	"context"
	"fmt"
	"sync"

	"sokoni/internal/dto"
	"sokoni/internal/nlsql"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Synthesizer turns a user message plus history into a candidate intent.
type Synthesizer interface {
	Synthesize(ctx context.Context, message string, history []Message) (nlsql.Intent, error)
}

// RowExecutor runs a sanitized read-only statement against the store.
type RowExecutor interface {
	ExecuteReadOnly(ctx context.Context, sql string) ([]map[string]any, error)
}

// pipelineState is the transient per-request record threaded through the
// three stages. Created at request start, discarded after serialization.
type pipelineState struct {
	input           string
	history         []Message
	queries         []string
	executedQuery   string
	naturalResponse string
	errMessage      string
	products        []map[string]any
}

// Pipeline is the three-stage conversational graph:
// extractSQL -> executeQuery -> formatOutput. One instance owns one
// conversation's memory; Run serializes callers so concurrent requests on
// the same session cannot interleave history.
type Pipeline struct {
	synthesizer Synthesizer
	executor    RowExecutor
	mode        nlsql.Mode
	logger      *zap.Logger

	mu     sync.Mutex
	memory []Message
}

func NewPipeline(synthesizer Synthesizer, executor RowExecutor, mode nlsql.Mode, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		synthesizer: synthesizer,
		executor:    executor,
		mode:        mode,
		logger:      logger,
	}
}

// Run executes the three stages in order and always terminates after exactly
// three transitions. No retries, no branching.
func (p *Pipeline) Run(ctx context.Context, input string) *dto.ChatResponse {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := &pipelineState{
		input:   input,
		history: append([]Message(nil), p.memory...),
	}

	p.extractSQL(ctx, state)
	p.executeQuery(ctx, state)
	return p.formatOutput(state)
}

func (p *Pipeline) extractSQL(ctx context.Context, state *pipelineState) {
	intent, err := p.synthesizer.Synthesize(ctx, state.input, state.history)
	if err != nil {
		p.logger.Error("SQL extraction failed", zap.Error(err))
		state.queries = nil
		state.naturalResponse = fmt.Sprintf("Error processing request: %v", err)
		return
	}

	p.memory = append(p.memory,
		Message{Role: RoleUser, Content: state.input},
		Message{Role: RoleAssistant, Content: intent.Response},
	)
	state.history = append([]Message(nil), p.memory...)
	state.queries = intent.Queries
	state.naturalResponse = intent.Response
}

func (p *Pipeline) executeQuery(ctx context.Context, state *pipelineState) {
	if len(state.queries) == 0 {
		state.errMessage = "No SQL query provided"
		state.products = []map[string]any{}
		return
	}

	seen := make(map[any]bool)
	products := make([]map[string]any, 0)

	for _, query := range state.queries {
		safeQuery := nlsql.Sanitize(query)
		if state.executedQuery == "" {
			state.executedQuery = safeQuery
		}

		rows, err := p.executor.ExecuteReadOnly(ctx, safeQuery)
		if err != nil {
			// Execution failure and zero matches are indistinguishable here;
			// the executor already logged the cause.
			p.logger.Warn("Query execution failed, treating as empty result",
				zap.String("query", safeQuery),
			)
			continue
		}

		// Dual mode runs two candidates; dedupe rows by product id.
		for _, row := range rows {
			if id, ok := row["id"]; ok {
				if seen[id] {
					continue
				}
				seen[id] = true
			}
			products = append(products, row)
		}
	}

	state.products = products
}

func (p *Pipeline) formatOutput(state *pipelineState) *dto.ChatResponse {
	if state.errMessage != "" {
		return &dto.ChatResponse{
			Response: "Error: " + state.errMessage,
			Products: nil,
		}
	}

	return &dto.ChatResponse{
		Response: fmt.Sprintf("%s\n\nFound %d matching products:", state.naturalResponse, len(state.products)),
		Products: state.products,
		Query:    state.executedQuery,
	}
}

// ChatService owns one pipeline per conversation session, keyed by session
// id. Sessions are created on first use and live for the process lifetime;
// memory growth within a session is unbounded.
type ChatService struct {
	synthesizer Synthesizer
	executor    RowExecutor
	mode        nlsql.Mode
	logger      *zap.Logger

	mu        sync.Mutex
	pipelines map[string]*Pipeline
}

func NewChatService(synthesizer Synthesizer, executor RowExecutor, mode nlsql.Mode, logger *zap.Logger) *ChatService {
	return &ChatService{
		synthesizer: synthesizer,
		executor:    executor,
		mode:        mode,
		logger:      logger,
		pipelines:   make(map[string]*Pipeline),
	}
}

// Query routes the message through the session's pipeline, creating the
// session when the id is empty or unknown.
func (s *ChatService) Query(ctx context.Context, sessionID, message string) *dto.ChatResponse {
	id, pipeline := s.sessionPipeline(sessionID)

	response := pipeline.Run(ctx, message)
	response.SessionID = id
	return response
}

func (s *ChatService) sessionPipeline(sessionID string) (string, *Pipeline) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	pipeline, ok := s.pipelines[sessionID]
	if !ok {
		pipeline = NewPipeline(s.synthesizer, s.executor, s.mode, s.logger)
		s.pipelines[sessionID] = pipeline
	}
	return sessionID, pipeline
}
