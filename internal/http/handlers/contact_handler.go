package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

type ContactHandler struct {
	Quotes *services.QuoteService
}

// POST /api/contact stores a quote request with the visitor's sell list.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in services.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	q, err := h.Quotes.Submit(c.UserContext(), c.Cookies(sidCookie), in)
	if err != nil {
		return apiError(c, "contact", err)
	}
	applog.Audit(c, "contact.quote.created", map[string]any{"quote_id": q.ID, "total": q.Total})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": q.ID, "total": q.Total, "status": q.Status})
}
