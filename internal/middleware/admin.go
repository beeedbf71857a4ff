package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"zezim/pkg/auth"
)

// AdminCookie carries the signed admin session token
const AdminCookie = "zezim_admin"

// AdminContext resolves the privilege flag for the request from the admin
// token cookie, if present, and exposes it via c.Locals("privileged").
// An invalid or expired token simply leaves the session unprivileged.
func AdminContext(adminAuth *auth.AdminAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileged := false

		if token := c.Cookies(AdminCookie); token != "" {
			if err := adminAuth.VerifyToken(token); err != nil {
				log.Printf("⚠️  Admin token rejected: %v", err)
			} else {
				privileged = true
			}
		}

		c.Locals("privileged", privileged)
		return c.Next()
	}
}

// RequireAdmin blocks requests whose session is not privileged
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if privileged, _ := c.Locals("privileged").(bool); !privileged {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Acesso negado: faça login.",
			})
		}
		return c.Next()
	}
}
