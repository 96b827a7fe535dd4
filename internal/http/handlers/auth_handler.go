package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

type AuthHandler struct {
	Auth   *services.AuthService
	Secure bool
}

type loginBody struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) setSession(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Secure,
		Expires:  expires,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if body.Username == "" || body.Password == "" {
		return badRequest(c, "username", "username and password are required")
	}

	tok, a, err := h.Auth.Login(c.UserContext(), body.Username, body.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"username": body.Username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}
	if err != nil {
		return apiError(c, "auth.login", err)
	}

	ttl := h.Auth.TTL
	if ttl <= 0 {
		ttl = services.SessionTTL
	}
	h.setSession(c, tok, time.Now().Add(ttl))
	c.Locals("admin", a.Username)
	log.Audit(c, "auth.login.success", map[string]any{"username": a.Username})
	return c.JSON(fiber.Map{"id": a.ID, "username": a.Username})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setSession(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/auth/me (behind RequireAdmin)
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"id": c.Locals("adminID"), "username": c.Locals("admin")})
}
