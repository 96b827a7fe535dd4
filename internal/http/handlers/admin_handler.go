package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/ingest"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

type AdminHandler struct {
	Importer    *ingest.Importer
	Replacer    *ingest.Replacer
	Maintenance *services.MaintenanceService
	Quotes      *services.QuoteService
	CSVDir      string
}

func formBool(c *fiber.Ctx, key string) bool {
	v, err := strconv.ParseBool(c.FormValue(key))
	return err == nil && v
}

// POST /api/admin/import (multipart: file, updateExisting, clearExisting)
func (h *AdminHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file", "a CSV file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return apiError(c, "admin.import", err)
	}
	defer f.Close()

	opts := ingest.ImportOptions{
		UpdateExisting: formBool(c, "updateExisting"),
		ClearExisting:  formBool(c, "clearExisting"),
	}
	res, err := h.Importer.Import(c.UserContext(), f, opts)
	if errors.Is(err, ingest.ErrBadSheet) {
		return badRequest(c, "file", err.Error())
	}
	if err != nil {
		return apiError(c, "admin.import", err)
	}
	applog.Audit(c, "admin.import", map[string]any{
		"file": fh.Filename, "imported": res.Imported, "updated": res.Updated,
		"skipped": res.Skipped, "errors": len(res.Errors),
	})
	return c.JSON(res)
}

// POST /api/admin/replace rebuilds the catalog from the sheets in CSV_DIR.
func (h *AdminHandler) Replace(c *fiber.Ctx) error {
	res, err := h.Replacer.ReplaceDir(c.UserContext(), h.CSVDir)
	if errors.Is(err, ingest.ErrBadSheet) {
		return badRequest(c, "csv", err.Error())
	}
	if err != nil {
		return apiError(c, "admin.replace", err)
	}
	applog.Audit(c, "admin.replace", map[string]any{
		"consoles": res.Consoles, "controllers": res.Controllers,
		"handhelds": res.Handhelds, "skipped": res.Skipped,
	})
	return c.JSON(res)
}

type addGamesBody struct {
	Games []services.NewGame `json:"games"`
}

// POST /api/admin/add-games
func (h *AdminHandler) AddGames(c *fiber.Ctx) error {
	var body addGamesBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if len(body.Games) == 0 {
		return badRequest(c, "games", "no games given")
	}
	res, err := h.Maintenance.AddGames(c.UserContext(), body.Games)
	if err != nil {
		return apiError(c, "admin.add_games", err)
	}
	return c.JSON(res)
}

// POST /api/admin/delete-duplicate-games?dryRun=true
func (h *AdminHandler) DeleteDuplicateGames(c *fiber.Ctx) error {
	res, err := h.Maintenance.DeleteDuplicateGames(c.UserContext(), c.QueryBool("dryRun", false))
	if err != nil {
		return apiError(c, "admin.dedupe_games", err)
	}
	return c.JSON(res)
}

// POST /api/admin/delete-other-console-games
func (h *AdminHandler) DeleteOtherConsoleGames(c *fiber.Ctx) error {
	res, err := h.Maintenance.DeleteOtherConsoleGames(c.UserContext())
	if err != nil {
		return apiError(c, "admin.delete_other_console_games", err)
	}
	return c.JSON(res)
}

// POST /api/admin/migrate-handhelds
func (h *AdminHandler) MigrateHandhelds(c *fiber.Ctx) error {
	res, err := h.Maintenance.MigrateHandhelds(c.UserContext())
	if err != nil {
		return apiError(c, "admin.migrate_handhelds", err)
	}
	return c.JSON(res)
}

// GET /api/admin/quotes
func (h *AdminHandler) Quotes(c *fiber.Ctx) error {
	qs, err := h.Quotes.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return apiError(c, "admin.quotes.list", err)
	}
	return c.JSON(qs)
}

// GET /api/admin/quotes/:id
func (h *AdminHandler) Quote(c *fiber.Ctx) error {
	q, err := h.Quotes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError(c, "admin.quotes.get", err)
	}
	return c.JSON(q)
}

type statusBody struct {
	Status string `json:"status"`
}

// PUT /api/admin/quotes/:id/status
func (h *AdminHandler) UpdateQuoteStatus(c *fiber.Ctx) error {
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	id := c.Params("id")
	if err := h.Quotes.UpdateStatus(c.UserContext(), id, body.Status); err != nil {
		return apiError(c, "admin.quotes.update", err)
	}
	applog.Audit(c, "admin.quotes.update", map[string]any{"quote_id": id, "status": body.Status})
	return c.JSON(fiber.Map{"id": id, "status": body.Status})
}
