package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

const genericError = "Something went wrong. Please try again."

// apiError maps a service error onto a JSON response. Validation messages
// are shown as is; anything unexpected is logged and hidden.
func apiError(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "field": verr.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrThrottled):
		applog.Security(c, "rate."+action+".hit", nil)
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests, please retry later"})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": genericError})
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "field": field})
}

func isAPI(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") }

// ErrorHandler is the app wide fallback. API paths get JSON, pages get the
// notfound template; the raw error only goes to the log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := genericError
	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError {
		code = ferr.Code
		msg = ferr.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	if isAPI(c) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}, "layout"); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
