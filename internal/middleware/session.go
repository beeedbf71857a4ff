package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookie carries the opaque session id identifying one browser session
const SessionCookie = "zezim_session"

// Session guarantees every request carries a stable session id: an existing
// cookie is reused, otherwise a fresh id is issued. The id itself grants no
// privilege. The id is exposed to handlers via c.Locals("session_id").
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookie)
		if sessionID == "" {
			sessionID = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				HTTPOnly: true,
				SameSite: "Lax",
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}

		c.Locals("session_id", sessionID)
		return c.Next()
	}
}
