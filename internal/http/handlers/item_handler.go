package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

type ItemHandler struct {
	Catalog *services.CatalogService
}

func listParams(c *fiber.Ctx) services.ListParams {
	return services.ListParams{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		CategoryID:  c.Query("categoryId"),
		Console:     c.Query("console"),
		ConsoleID:   c.Query("consoleId"),
		ConsoleType: c.Query("consoleType"),
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", services.DefaultPageSize),
	}
}

// GET /api/items
func (h *ItemHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.ListItems(c.UserContext(), listParams(c)))
}

// GET /api/items/:id
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid item id")
	}
	d, err := h.Catalog.GetItem(c.UserContext(), id)
	if err != nil {
		return apiError(c, "items.get", err)
	}
	return c.JSON(d)
}

// GET /api/items/barcode/:code
func (h *ItemHandler) ByBarcode(c *fiber.Ctx) error {
	d, err := h.Catalog.FindByBarcode(c.UserContext(), c.Params("code"))
	if err != nil {
		return apiError(c, "items.barcode", err)
	}
	log.Info(c, "items.barcode.hit", map[string]any{"item_id": d.ID})
	return c.JSON(d)
}

// POST /api/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	d, err := h.Catalog.CreateItem(c.UserContext(), in)
	if err != nil {
		return apiError(c, "items.create", err)
	}
	log.Audit(c, "items.create", map[string]any{"item_id": d.ID, "name": d.Name})
	return c.Status(fiber.StatusCreated).JSON(d)
}

// PUT /api/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid item id")
	}
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	d, err := h.Catalog.UpdateItem(c.UserContext(), id, in)
	if err != nil {
		return apiError(c, "items.update", err)
	}
	log.Audit(c, "items.update", map[string]any{"item_id": id})
	return c.JSON(d)
}

// DELETE /api/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid item id")
	}
	if err := h.Catalog.DeleteItem(c.UserContext(), id); err != nil {
		return apiError(c, "items.delete", err)
	}
	log.Audit(c, "items.delete", map[string]any{"item_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
