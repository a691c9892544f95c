package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docucortex-be/pkg/gateway"
)

// Provider calls the Hugging Face serverless inference API. The API exposes
// raw text generation rather than chat, so the conversation is flattened
// into a single prompt.
type Provider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ gateway.Gateway = &Provider{}

func New(apiKey, modelName string) *Provider {
	if modelName == "" {
		modelName = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	return &Provider{
		BaseURL:   "https://api-inference.huggingface.co/models",
		APIKey:    apiKey,
		ModelName: modelName,
		Client:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *Provider) Name() string { return "huggingface" }

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	Temperature    float64 `json:"temperature,omitempty"`
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (p *Provider) ProcessConversation(ctx context.Context, req *gateway.Request) (*gateway.GenerationResult, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("%w: huggingface: missing api key", gateway.ErrAuth)
	}

	payload := inferenceRequest{
		Inputs: flattenPrompt(req),
		Parameters: inferenceParameters{
			Temperature:    req.Temperature,
			MaxNewTokens:   req.MaxTokens,
			ReturnFullText: false,
		},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/" + p.ModelName
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	start := time.Now()
	resp, err := p.Client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: huggingface: %v", gateway.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: huggingface: %v", gateway.ErrConnection, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: huggingface: read body: %v", gateway.ErrConnection, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: huggingface: status %d", gateway.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: huggingface: status %d", gateway.ErrRateLimit, resp.StatusCode)
	case resp.StatusCode == http.StatusServiceUnavailable:
		// Cold model, the API asks the caller to retry later.
		return nil, fmt.Errorf("%w: huggingface: model loading, status %d", gateway.ErrConnection, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: huggingface: status %d, body: %s", gateway.ErrConnection, resp.StatusCode, string(bodyBytes))
	}

	var inference inferenceResponse
	if err := json.Unmarshal(bodyBytes, &inference); err != nil {
		return nil, fmt.Errorf("%w: huggingface: %v", gateway.ErrMalformed, err)
	}
	if len(inference) == 0 || strings.TrimSpace(inference[0].GeneratedText) == "" {
		return nil, fmt.Errorf("%w: huggingface: empty completion", gateway.ErrMalformed)
	}

	return &gateway.GenerationResult{
		Response:     strings.TrimSpace(inference[0].GeneratedText),
		Confidence:   0.85,
		Model:        p.ModelName,
		ResponseTime: time.Since(start),
	}, nil
}

func flattenPrompt(req *gateway.Request) string {
	var b strings.Builder
	if req.SystemPrompt != "" {
		b.WriteString(req.SystemPrompt)
		b.WriteString("\n\n")
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case "assistant", "model":
			b.WriteString("Assistant: ")
		default:
			b.WriteString("Utilisateur: ")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}
