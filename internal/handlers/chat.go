package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"zezim/internal/logging"
	"zezim/internal/models"
	"zezim/internal/services"
)

// ChatHandler handles chat messages and conversation resets
type ChatHandler struct {
	chat          *services.ChatService
	conversations *services.ConversationService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *services.ChatService, conversations *services.ConversationService) *ChatHandler {
	return &ChatHandler{chat: chat, conversations: conversations}
}

// SendMessage runs one chat exchange and returns the sanitized reply.
// POST /chat
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sessionID, _ := c.Locals("session_id").(string)
	privileged, _ := c.Locals("privileged").(bool)
	logger := logging.WithSession(sessionID)

	reply, err := h.chat.SendMessage(c.UserContext(), sessionID, privileged, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Mensagem vazia",
			})
		}
		logger.Warn("chat exchange failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logger.Debug("chat exchange completed")
	return c.JSON(models.ChatResponse{Reply: reply})
}

// ResetChat deletes this session's conversation history.
// POST /reset_chat
func (h *ChatHandler) ResetChat(c *fiber.Ctx) error {
	if sessionID, ok := c.Locals("session_id").(string); ok {
		h.conversations.Reset(sessionID)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
