package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/mo"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

// PageHandler renders the public catalog pages.
type PageHandler struct {
	Catalog *services.CatalogService
}

func (h *PageHandler) nav(c *fiber.Ctx) fiber.Map {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		applog.Error(c, "pages.nav.fail", err, nil)
	}
	return fiber.Map{"Categories": cats}
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	p := listParams(c)
	data := h.nav(c)
	data["Page"] = h.Catalog.ListItems(c.UserContext(), p)
	data["Q"] = validate.Search(p.Search)
	data["Category"] = p.Category
	data["Console"] = p.Console
	data["ConsoleType"] = p.ConsoleType
	return render(c, "catalog", data)
}

// GET /category/:slug
func (h *PageHandler) Category(c *fiber.Ctx) error {
	cat, err := h.Catalog.CategoryBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return notFoundPage(c, "This category does not exist")
	}
	p := listParams(c)
	p.Category = ""
	p.CategoryID = strconv.FormatInt(cat.ID, 10)
	data := h.nav(c)
	data["Current"] = cat
	data["Page"] = h.Catalog.ListItems(c.UserContext(), p)
	data["Q"] = validate.Search(p.Search)
	return render(c, "category", data)
}

// GET /item/:id
func (h *PageHandler) Item(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "item"})
		return notFoundPage(c, "This item is no longer available")
	}
	d, err := h.Catalog.GetItem(c.UserContext(), id)
	if err != nil {
		return notFoundPage(c, "This item is no longer available")
	}
	data := h.nav(c)
	data["Item"] = d
	data["Tiers"] = tierRows(d.Tiers())
	return render(c, "item", data)
}

type tierRow struct {
	Label string
	Price float64
}

func tierRows(t domain.Tiers) []tierRow {
	type labelled struct {
		label string
		opt   mo.Option[float64]
	}
	var all []labelled
	switch v := t.(type) {
	case domain.GameTiers:
		all = []labelled{{"Complete in Box", v.CompleteInBox}, {"Box and Game", v.BoxAndGame}, {"Disc Only", v.DiscOnly}}
	case domain.ConsoleTiers:
		all = []labelled{{"Complete", v.Complete}, {"With Controller", v.WithController}, {"Console Only", v.Only}}
	case domain.ConditionTiers:
		all = []labelled{{"Good", v.Good}, {"Acceptable", v.Acceptable}}
	}
	rows := make([]tierRow, 0, len(all))
	for _, l := range all {
		if p, ok := domain.FirstPositive(l.opt).Get(); ok {
			rows = append(rows, tierRow{Label: l.label, Price: p})
		}
	}
	return rows
}
