package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

const sessionCookie = "session"

// RequireAdmin lets a request through only with a valid admin session.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Cookies(sessionCookie)
		if tok == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "no_session"})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		a, err := auth.CurrentAdmin(c.UserContext(), tok)
		if err != nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "invalid_session"})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		c.Locals("admin", a.Username)
		c.Locals("adminID", a.ID)
		return c.Next()
	}
}

// AttachAdmin marks the request with the admin name when a valid session is
// present, so page templates can show admin links. It never rejects.
func AttachAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := c.Cookies(sessionCookie); tok != "" {
			if a, err := auth.CurrentAdmin(c.UserContext(), tok); err == nil {
				c.Locals("admin", a.Username)
			}
		}
		return c.Next()
	}
}
