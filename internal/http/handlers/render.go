package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if name, ok := c.Locals("admin").(string); ok && name != "" {
		data["Admin"] = name
	}
	return c.Render(tmpl, data, "layout")
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg}, "layout")
}
