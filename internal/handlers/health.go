package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health responds with server health status
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
