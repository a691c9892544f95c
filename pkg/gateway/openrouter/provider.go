package openrouter

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

// Provider calls OpenRouter's OpenAI-compatible chat completions API.
type Provider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Referer   string
	Client    *http.Client
}

var _ gateway.Gateway = &Provider{}

func New(apiKey, modelName string) *Provider {
	if modelName == "" {
		modelName = "mistralai/mistral-7b-instruct:free"
	}
	return &Provider{
		BaseURL:   "https://openrouter.ai/api/v1",
		APIKey:    apiKey,
		ModelName: modelName,
		Client:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *Provider) Name() string { return "openrouter" }

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (p *Provider) ProcessConversation(ctx context.Context, req *gateway.Request) (*gateway.GenerationResult, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("%w: openrouter: missing api key", gateway.ErrAuth)
	}

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

	payload := completionRequest{
		Model:       p.ModelName,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/chat/completions", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	if p.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.Referer)
	}

	start := time.Now()
	resp, err := p.Client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: openrouter: %v", gateway.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: openrouter: %v", gateway.ErrConnection, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: openrouter: read body: %v", gateway.ErrConnection, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: openrouter: status %d", gateway.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: openrouter: status %d", gateway.ErrRateLimit, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: openrouter: status %d, body: %s", gateway.ErrConnection, resp.StatusCode, string(bodyBytes))
	}

	var completion completionResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return nil, fmt.Errorf("%w: openrouter: %v", gateway.ErrMalformed, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: openrouter: empty completion", gateway.ErrMalformed)
	}

	return &gateway.GenerationResult{
		Response:     completion.Choices[0].Message.Content,
		Confidence:   0.9,
		Model:        completion.Model,
		Tokens:       completion.Usage.TotalTokens,
		ResponseTime: time.Since(start),
	}, nil
}
