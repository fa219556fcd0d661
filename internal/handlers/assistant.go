package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fleeto/internal/services"
)

// AssistantHandler fronts the chatbot persona endpoint.
type AssistantHandler struct {
	assistant *services.AssistantService
}

// NewAssistantHandler constructs AssistantHandler.
func NewAssistantHandler(assistant *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type chatPromptRequest struct {
	Prompt string `json:"prompt"`
}

// Chat forwards a prompt to the assistant and returns its reply.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req chatPromptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}

	reply, err := h.assistant.Chat(req.Prompt)
	if err != nil {
		log.Printf("[Assistant] chat failed: %v", err)
		return fiber.NewError(fiber.StatusBadGateway, "assistant unavailable, please retry")
	}

	return c.JSON(fiber.Map{"success": true, "reply": reply})
}
