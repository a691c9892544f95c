package gateway

import (
	"context"
	"time"
)

// Message is a provider-agnostic chat message.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Request carries one generation call through the fallback chain.
type Request struct {
	SessionID    string
	Messages     []Message
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// GenerationResult is the uniform success envelope of every backend.
type GenerationResult struct {
	Response     string
	Confidence   float64
	Provider     string
	Model        string
	Tokens       int
	ResponseTime time.Duration
}

// Gateway is the contract every text-generation backend implements.
type Gateway interface {
	// Name identifies the provider in attempt records and envelopes.
	Name() string

	// ProcessConversation sends the conversation to the backend. Failures must
	// be wrapped in one of the taxonomy errors (ErrConnection, ErrAuth, ...).
	ProcessConversation(ctx context.Context, req *Request) (*GenerationResult, error)
}

// Provider pairs a gateway with its routing attributes. A slice of these,
// sorted by ascending Priority, defines the attempt order.
type Provider struct {
	Name     string
	Priority int
	Enabled  bool
	Timeout  time.Duration
	Gateway  Gateway
}

// Policy is the consolidated fallback policy consumed by Dispatch.
type Policy struct {
	MaxAttempts int
	AutoSwitch  bool
	// Confidence overrides the default responder's canned confidences for
	// this dispatch when non-zero, so snapshot reloads take effect without
	// rebuilding the responder.
	Confidence ConfidenceDefaults
}

// Attempt records one provider call for observability. Not persisted.
type Attempt struct {
	Provider string
	Index    int
	Latency  time.Duration
	Err      error
}
