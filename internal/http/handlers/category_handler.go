package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

// CategoryHandler serves categories, console types and consoles.
type CategoryHandler struct {
	Catalog *services.CatalogService
}

type nameBody struct {
	Name          string `json:"name"`
	ConsoleTypeID int64  `json:"consoleTypeId"`
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return apiError(c, "categories.list", err)
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid category id")
	}
	cat, err := h.Catalog.GetCategory(c.UserContext(), id)
	if err != nil {
		return apiError(c, "categories.get", err)
	}
	return c.JSON(cat)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var body nameBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), body.Name)
	if err != nil {
		return apiError(c, "categories.create", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"category_id": cat.ID, "name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid category id")
	}
	var body nameBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	cat, err := h.Catalog.UpdateCategory(c.UserContext(), id, body.Name)
	if err != nil {
		return apiError(c, "categories.update", err)
	}
	applog.Audit(c, "categories.update", map[string]any{"category_id": id, "name": cat.Name})
	return c.JSON(cat)
}

// Delete removes the category and every item in it.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid category id")
	}
	if err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return apiError(c, "categories.delete", err)
	}
	applog.Audit(c, "categories.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CategoryHandler) ListConsoleTypes(c *fiber.Ctx) error {
	types, err := h.Catalog.ListConsoleTypes(c.UserContext())
	if err != nil {
		return apiError(c, "console_types.list", err)
	}
	return c.JSON(types)
}

func (h *CategoryHandler) CreateConsoleType(c *fiber.Ctx) error {
	var body nameBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	t, err := h.Catalog.CreateConsoleType(c.UserContext(), body.Name)
	if err != nil {
		return apiError(c, "console_types.create", err)
	}
	applog.Audit(c, "console_types.create", map[string]any{"console_type_id": t.ID, "name": t.Name})
	return c.Status(fiber.StatusCreated).JSON(t)
}

// GET /api/console-types/:id/consoles
func (h *CategoryHandler) ConsolesByType(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid console type id")
	}
	cons, err := h.Catalog.ConsolesByType(c.UserContext(), id)
	if err != nil {
		return apiError(c, "consoles.by_type", err)
	}
	return c.JSON(cons)
}

func (h *CategoryHandler) ListConsoles(c *fiber.Ctx) error {
	cons, err := h.Catalog.ListConsoles(c.UserContext())
	if err != nil {
		return apiError(c, "consoles.list", err)
	}
	return c.JSON(cons)
}

func (h *CategoryHandler) CreateConsole(c *fiber.Ctx) error {
	var body nameBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	co, err := h.Catalog.CreateConsole(c.UserContext(), body.Name, body.ConsoleTypeID)
	if err != nil {
		return apiError(c, "consoles.create", err)
	}
	applog.Audit(c, "consoles.create", map[string]any{"console_id": co.ID, "name": co.Name})
	return c.Status(fiber.StatusCreated).JSON(co)
}
