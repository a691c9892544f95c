package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/config"
	"docucortex-be/internal/dto"
)

type stubAIService struct{}

func (s *stubAIService) ProcessQuery(ctx context.Context, userID *uuid.UUID, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	return &dto.ChatResponse{Success: true, Response: "ok"}, nil
}

func (s *stubAIService) GetConversations(ctx context.Context, sessionID string, limit int) ([]*dto.ConversationResponse, error) {
	return nil, nil
}

func (s *stubAIService) DeleteSession(ctx context.Context, sessionID string) error { return nil }

func (s *stubAIService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	return &dto.StatisticsResponse{}, nil
}

func newTestApp(runtime *config.Runtime) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	NewAIController(&stubAIService{}, runtime).RegisterRoutes(api)
	return app
}

func newTestRuntime() *config.Runtime {
	return config.NewRuntime(&config.Config{
		Keys: config.APIKeys{OpenRouter: "key"},
		Ai:   config.AIConfig{MaxAttempts: 3, AutoSwitch: true, Temperature: 0.7, MaxTokens: 1024},
	})
}

func TestToggleProviderRoute(t *testing.T) {
	runtime := newTestRuntime()
	app := newTestApp(runtime)

	req := httptest.NewRequest("POST", "/api/ai/v1/providers/ollama/toggle", strings.NewReader(`{"enabled":false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, runtime.Snapshot().Providers["ollama"].Enabled)

	req = httptest.NewRequest("POST", "/api/ai/v1/providers/nonexistent/toggle", strings.NewReader(`{"enabled":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReloadConfigRoute(t *testing.T) {
	runtime := newTestRuntime()
	app := newTestApp(runtime)

	body := `{"max_attempts":2,"auto_switch":false,"temperature":0.5,"max_tokens":512}`
	req := httptest.NewRequest("PUT", "/api/ai/v1/config/reload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	snap := runtime.Snapshot()
	assert.Equal(t, 2, snap.MaxAttempts)
	assert.False(t, snap.AutoSwitch)
	assert.Equal(t, 0.5, snap.Temperature)
	assert.Equal(t, 512, snap.MaxTokens)
}
