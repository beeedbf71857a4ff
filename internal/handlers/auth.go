package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"zezim/internal/middleware"
	"zezim/internal/models"
	"zezim/internal/services"
	"zezim/pkg/auth"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	adminAuth     *auth.AdminAuth
	conversations *services.ConversationService
	tokenExpiry   time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(adminAuth *auth.AdminAuth, conversations *services.ConversationService, tokenExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		adminAuth:     adminAuth,
		conversations: conversations,
		tokenExpiry:   tokenExpiry,
	}
}

// Login authenticates the admin credentials and issues the admin token
// cookie. The privilege flip invalidates this session's conversation on its
// next fetch, so the system turn is rebuilt from the admin configuration.
// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !h.adminAuth.Authenticate(req.Username, req.Password) {
		log.Printf("❌ Failed admin login attempt from %s", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Credenciais inválidas",
		})
	}

	token, err := h.adminAuth.GenerateToken()
	if err != nil {
		log.Printf("❌ Failed to generate admin token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create admin session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(h.tokenExpiry),
	})

	log.Printf("✅ Admin logged in from %s", c.IP())
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Login realizado com sucesso!",
	})
}

// Logout clears the admin token cookie and deletes this session's history.
// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})

	if sessionID, ok := c.Locals("session_id").(string); ok {
		h.conversations.Reset(sessionID)
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Você saiu do painel admin.",
	})
}
