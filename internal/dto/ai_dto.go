package dto

import "time"

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required,min=1,max=128"`
	Message   string `json:"message" validate:"required,min=1,max=4000"`
}

// SourceResponse is one cited document excerpt.
type SourceResponse struct {
	Filename string  `json:"filename"`
	Filepath string  `json:"filepath"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
}

// IntentContext echoes what the classifier decided for this turn.
type IntentContext struct {
	Intent      string   `json:"intent"`
	Description string   `json:"description,omitempty"`
	Reasoning   []string `json:"reasoning,omitempty"`
}

type ChatResponse struct {
	Success     bool             `json:"success"`
	Response    string           `json:"response"`
	Confidence  float64          `json:"confidence"`
	AiProvider  string           `json:"ai_provider"`
	Sources     []SourceResponse `json:"sources,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Context     *IntentContext   `json:"context,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type ConversationResponse struct {
	Id          string           `json:"id"`
	SessionID   string           `json:"session_id"`
	UserMessage string           `json:"user_message"`
	Response    string           `json:"response"`
	Confidence  float64          `json:"confidence"`
	Provider    string           `json:"provider"`
	Intent      string           `json:"intent"`
	Sources     []SourceResponse `json:"sources,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// QueryProcessedMessage travels over the in-process bus after each turn,
// feeding the statistics consumer.
type QueryProcessedMessage struct {
	SessionID  string  `json:"session_id"`
	Intent     string  `json:"intent"`
	Provider   string  `json:"provider"`
	Confidence float64 `json:"confidence"`
	Enriched   bool    `json:"enriched"`
}

type ProviderToggleRequest struct {
	Enabled bool `json:"enabled"`
}

type ProviderStatusResponse struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Enabled  bool   `json:"enabled"`
}

type StatisticsResponse struct {
	TotalQueries     int64            `json:"total_queries"`
	QueriesByIntent  map[string]int64 `json:"queries_by_intent"`
	UsageByProvider  map[string]int64 `json:"usage_by_provider"`
	ActiveSessions   int              `json:"active_sessions"`
	IntentMemorySize int              `json:"intent_memory_size"`
}

type ReloadConfigRequest struct {
	MaxAttempts  int     `json:"max_attempts" validate:"required,min=1,max=10"`
	AutoSwitch   bool    `json:"auto_switch"`
	Temperature  float64 `json:"temperature" validate:"min=0,max=2"`
	MaxTokens    int     `json:"max_tokens" validate:"min=1,max=32768"`
	SystemPrompt string  `json:"system_prompt"`
}
