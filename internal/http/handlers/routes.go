package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
)

// BodyLimit fits the CSV uploads, the largest bodies the app accepts.
const BodyLimit = 8 << 20

// NewApp builds the server with its middleware stack and every route.
func NewApp(d *Deps, views fiber.Views) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: ErrorHandler,
		BodyLimit:    BodyLimit,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))

	Mount(app, d)
	return app
}

// Mount registers every route on app.
func Mount(app *fiber.App, d *Deps) {
	admin := RequireAdmin(d.Auth)

	// Public pages
	app.Get("/", AttachAdmin(d.Auth), d.PageHandler.Home)
	app.Get("/category/:slug", AttachAdmin(d.Auth), d.PageHandler.Category)
	app.Get("/item/:id", AttachAdmin(d.Auth), d.PageHandler.Item)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api")

	// Auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Get("/auth/me", admin, d.AuthHandler.Me)

	// Catalog
	api.Get("/items", d.ItemHandler.List)
	api.Get("/items/barcode/:code", admin, d.ItemHandler.ByBarcode)
	api.Get("/items/:id", d.ItemHandler.Get)
	api.Post("/items", admin, d.ItemHandler.Create)
	api.Put("/items/:id", admin, d.ItemHandler.Update)
	api.Delete("/items/:id", admin, d.ItemHandler.Delete)

	api.Get("/categories", d.CategoryHandler.List)
	api.Post("/categories", admin, d.CategoryHandler.Create)
	api.Get("/categories/:id", d.CategoryHandler.Get)
	api.Put("/categories/:id", admin, d.CategoryHandler.Update)
	api.Delete("/categories/:id", admin, d.CategoryHandler.Delete)

	api.Get("/console-types", d.CategoryHandler.ListConsoleTypes)
	api.Post("/console-types", admin, d.CategoryHandler.CreateConsoleType)
	api.Get("/console-types/:id/consoles", d.CategoryHandler.ConsolesByType)
	api.Get("/consoles", d.CategoryHandler.ListConsoles)
	api.Post("/consoles", admin, d.CategoryHandler.CreateConsole)

	// Visitor
	api.Get("/sell-list", d.SellListHandler.View)
	api.Put("/sell-list", d.SellListHandler.Replace)
	api.Delete("/sell-list", d.SellListHandler.Clear)
	api.Post("/contact", d.ContactHandler.Submit)

	// Admin batch jobs
	ops := api.Group("/admin", admin)
	ops.Post("/import", d.AdminHandler.Import)
	ops.Post("/replace", d.AdminHandler.Replace)
	ops.Post("/add-games", d.AdminHandler.AddGames)
	ops.Post("/delete-duplicate-games", d.AdminHandler.DeleteDuplicateGames)
	ops.Post("/delete-other-console-games", d.AdminHandler.DeleteOtherConsoleGames)
	ops.Post("/migrate-handhelds", d.AdminHandler.MigrateHandhelds)
	ops.Get("/quotes", d.AdminHandler.Quotes)
	ops.Get("/quotes/:id", d.AdminHandler.Quote)
	ops.Put("/quotes/:id/status", d.AdminHandler.UpdateQuoteStatus)

	app.Use(func(c *fiber.Ctx) error {
		if isAPI(c) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return notFoundPage(c, "Page not found")
	})
}
