package middleware

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	// Login attempts (per IP) - brute force protection
	LoginMax        int
	LoginExpiration time.Duration

	// Chat messages (per session) - every message triggers a paid completion call
	ChatMax        int
	ChatExpiration time.Duration
}

// LoadRateLimitConfig loads config from environment variables with defaults
func LoadRateLimitConfig() *RateLimitConfig {
	config := &RateLimitConfig{
		// 5 attempts per 15 minutes per IP
		LoginMax:        5,
		LoginExpiration: 15 * time.Minute,

		// 30 messages per minute per session
		ChatMax:        30,
		ChatExpiration: 1 * time.Minute,
	}

	if v := os.Getenv("RATE_LIMIT_LOGIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.LoginMax = n
		}
	}

	if v := os.Getenv("RATE_LIMIT_CHAT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.ChatMax = n
		}
	}

	return config
}

// LoginRateLimiter limits login attempts per IP
func LoginRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.LoginMax,
		Expiration: config.LoginExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("🚫 [RATE-LIMIT] Login limit reached for IP: %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Muitas tentativas de login. Aguarde antes de tentar novamente.",
				"retry_after": int(config.LoginExpiration.Seconds()),
			})
		},
	})
}

// ChatRateLimiter limits chat messages per session, falling back to IP
func ChatRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.ChatMax,
		Expiration: config.ChatExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if sessionID, ok := c.Locals("session_id").(string); ok && sessionID != "" {
				return "chat:" + sessionID
			}
			return "chat-ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("⚠️  [RATE-LIMIT] Chat limit reached for session: %v", c.Locals("session_id"))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Muitas mensagens. Aguarde um momento.",
				"retry_after": int(config.ChatExpiration.Seconds()),
			})
		},
	})
}
