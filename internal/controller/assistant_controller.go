package controller

import (
	"fmt"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	maxHistoryLength int
	middlewares      []fiber.Handler
}

func NewAssistantController(
	assistantService service.IAssistantService,
	maxHistoryLength int,
	middlewares ...fiber.Handler,
) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		maxHistoryLength: maxHistoryLength,
		middlewares:      middlewares,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	for _, middleware := range c.middlewares {
		h.Use(middleware)
	}
	h.Post("", c.Chat)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	history, err := c.normalizeHistory(req.History)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result := c.assistantService.Chat(ctx.Context(), req.Message, history)

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusBadRequest
	}
	return ctx.Status(status).JSON(dto.ChatResponse{
		Success: result.Success,
		Message: result.Message,
		Payload: result.Payload,
	})
}

// normalizeHistory applies the boundary policy: inbound history that is too
// long or malformed fails the whole request. Silent trimming only happens
// later, when the prompt is built from already-accepted history.
func (c *assistantController) normalizeHistory(items []dto.ChatHistoryItem) ([]llm.Message, error) {
	if items == nil {
		return nil, nil
	}
	if len(items) > c.maxHistoryLength {
		return nil, fmt.Errorf("`history` may contain at most %d messages.", c.maxHistoryLength)
	}

	history := make([]llm.Message, 0, len(items))
	for _, item := range items {
		switch item.Role {
		case "user", "assistant", "system":
		default:
			return nil, fmt.Errorf("History items require `role` in {user, assistant, system} and string `content`.")
		}
		if item.Content == nil {
			return nil, fmt.Errorf("History items require `role` in {user, assistant, system} and string `content`.")
		}
		history = append(history, llm.Message{Role: item.Role, Content: *item.Content})
	}
	return history, nil
}
