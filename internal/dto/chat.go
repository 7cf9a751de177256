package dto

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response  string           `json:"response"`
	Products  []map[string]any `json:"products"`
	Query     string           `json:"query,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
}

type SemanticSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type SemanticSearchResponse struct {
	Products []map[string]any `json:"products"`
}
