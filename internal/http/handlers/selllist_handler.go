package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

const sidCookie = "sid"

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

// SellListHandler manages the anonymous visitor's list of items to sell.
type SellListHandler struct {
	SellList *services.SellListService
}

type sellListBody struct {
	Items []services.SellListLine `json:"items"`
}

// GET /api/sell-list
func (h *SellListHandler) View(c *fiber.Ctx) error {
	v, err := h.SellList.View(c.UserContext(), ensureSID(c))
	if err != nil {
		return apiError(c, "selllist.view", err)
	}
	return c.JSON(v)
}

// PUT /api/sell-list replaces the whole list; prices are computed here.
func (h *SellListHandler) Replace(c *fiber.Ctx) error {
	var body sellListBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	v, err := h.SellList.Replace(c.UserContext(), ensureSID(c), body.Items)
	if err != nil {
		return apiError(c, "selllist.replace", err)
	}
	return c.JSON(v)
}

// DELETE /api/sell-list
func (h *SellListHandler) Clear(c *fiber.Ctx) error {
	if err := h.SellList.Clear(c.UserContext(), ensureSID(c)); err != nil {
		return apiError(c, "selllist.clear", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
