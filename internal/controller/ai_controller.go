package controller

import (
	"sort"

	"docucortex-be/internal/config"
	"docucortex-be/internal/dto"
	"docucortex-be/internal/pkg/serverutils"
	"docucortex-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	GetConversations(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	GetStatistics(ctx *fiber.Ctx) error
	GetProviders(ctx *fiber.Ctx) error
	ToggleProvider(ctx *fiber.Ctx) error
	ReloadConfig(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAIService
	runtime   *config.Runtime
}

func NewAIController(aiService service.IAIService, runtime *config.Runtime) IAIController {
	return &aiController{
		aiService: aiService,
		runtime:   runtime,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/v1")
	h.Post("chat", c.Chat)
	h.Get("conversations/:sessionId", c.GetConversations)
	h.Delete("sessions/:sessionId", c.DeleteSession)
	h.Get("statistics", c.GetStatistics)
	h.Get("providers", c.GetProviders)
	h.Post("providers/:name/toggle", c.ToggleProvider)
	h.Put("config/reload", c.ReloadConfig)
}

func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var userID *uuid.UUID
	if raw, ok := ctx.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			userID = &id
		}
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.ProcessQuery(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *aiController) GetConversations(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	limit := ctx.QueryInt("limit", 20)

	res, err := c.aiService.GetConversations(ctx.Context(), sessionID, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversation history", res))
}

func (c *aiController) DeleteSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	if err := c.aiService.DeleteSession(ctx.Context(), sessionID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted", nil))
}

func (c *aiController) GetStatistics(ctx *fiber.Ctx) error {
	res, err := c.aiService.GetStatistics(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("AI statistics", res))
}

func (c *aiController) GetProviders(ctx *fiber.Ctx) error {
	snap := c.runtime.Snapshot()

	providers := make([]dto.ProviderStatusResponse, 0, len(snap.Providers))
	for name, settings := range snap.Providers {
		providers = append(providers, dto.ProviderStatusResponse{
			Name:     name,
			Priority: settings.Priority,
			Enabled:  settings.Enabled,
		})
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Priority < providers[j].Priority })

	return ctx.JSON(serverutils.SuccessResponse("Provider status", providers))
}

func (c *aiController) ToggleProvider(ctx *fiber.Ctx) error {
	name := ctx.Params("name")

	var req dto.ProviderToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := c.runtime.SetProviderEnabled(name, req.Enabled); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Provider updated", nil))
}

func (c *aiController) ReloadConfig(ctx *fiber.Ctx) error {
	var req dto.ReloadConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	cur := c.runtime.Snapshot()
	next := *cur
	next.MaxAttempts = req.MaxAttempts
	next.AutoSwitch = req.AutoSwitch
	if req.Temperature > 0 {
		next.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		next.MaxTokens = req.MaxTokens
	}
	if req.SystemPrompt != "" {
		next.SystemPrompt = req.SystemPrompt
	}

	if err := c.runtime.Reload(&next); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Configuration reloaded", nil))
}
