package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"docucortex-be/pkg/gateway"
)

// Provider talks to a local Ollama daemon over its /api/chat endpoint.
type Provider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ gateway.Gateway = &Provider{}

func New(baseURL, modelName string) *Provider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Provider{
		BaseURL:   baseURL,
		ModelName: modelName,
		// The dispatcher bounds each attempt with its own context deadline;
		// this is only a safety net.
		Client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *Provider) Name() string { return "ollama" }

// --- Request/Response structs (internal to this package) ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model     string      `json:"model"`
	Message   chatMessage `json:"message"`
	Done      bool        `json:"done"`
	EvalCount int         `json:"eval_count"`
}

func (p *Provider) ProcessConversation(ctx context.Context, req *gateway.Request) (*gateway.GenerationResult, error) {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, msg := range req.Messages {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: msg.Content})
	}

	payload := chatRequest{
		Model:    p.ModelName,
		Messages: messages,
		Stream:   false,
		Options:  &chatOptions{Temperature: req.Temperature},
	}
	if req.MaxTokens > 0 {
		payload.Options.NumPredict = req.MaxTokens
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.Client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: ollama: %v", gateway.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: ollama: %v", gateway.ErrConnection, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: read body: %v", gateway.ErrConnection, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: ollama: status %d", gateway.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: ollama: status %d", gateway.ErrRateLimit, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: ollama: status %d, body: %s", gateway.ErrConnection, resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: ollama: %v", gateway.ErrMalformed, err)
	}
	if chatResp.Message.Content == "" {
		return nil, fmt.Errorf("%w: ollama: empty completion", gateway.ErrMalformed)
	}

	return &gateway.GenerationResult{
		Response:     chatResp.Message.Content,
		Confidence:   0.9,
		Model:        chatResp.Model,
		Tokens:       chatResp.EvalCount,
		ResponseTime: time.Since(start),
	}, nil
}
