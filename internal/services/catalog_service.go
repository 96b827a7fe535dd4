package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

type CatalogService struct {
	DB    *sqlx.DB
	Cats  *repos.CategoryRepo
	Cons  *repos.ConsoleRepo
	Items *repos.ItemRepo
}

func NewCatalogService(db *sqlx.DB) *CatalogService {
	return &CatalogService{
		DB:    db,
		Cats:  repos.NewCategoryRepo(db),
		Cons:  repos.NewConsoleRepo(db),
		Items: repos.NewItemRepo(db),
	}
}

// ListParams are the raw catalog query parameters.
type ListParams struct {
	Search      string
	Category    string
	CategoryID  string
	Console     string
	ConsoleID   string
	ConsoleType string
	Page        int
	Limit       int
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type ItemPage struct {
	Items      []domain.ItemDetail `json:"items"`
	Pagination Pagination          `json:"pagination"`
}

var categoryTokens = map[string]string{
	"consoles":    domain.CategoryConsoles,
	"accessories": domain.CategoryAccessories,
	"handhelds":   domain.CategoryHandhelds,
	"controllers": domain.CategoryControllers,
	"games":       domain.CategoryGames,
}

// BuildItemFilter resolves raw parameters into a filter.
func BuildItemFilter(p ListParams) repos.ItemFilter {
	f := repos.ItemFilter{Search: validate.Search(p.Search)}

	cat := strings.TrimSpace(p.Category)
	if id, ok := validate.ID(p.CategoryID); ok {
		f.CategoryID = id
	} else if id, ok := validate.ID(cat); ok {
		f.CategoryID = id
	} else if name, ok := categoryTokens[strings.ToLower(cat)]; ok {
		f.CategoryName = name
	} else if cat != "" && !strings.EqualFold(cat, "all") {
		f.CategoryLike = validate.Search(cat)
	}

	console := strings.TrimSpace(p.Console)
	ctype := strings.TrimSpace(p.ConsoleType)
	switch {
	case p.ConsoleID != "":
		f.ConsoleID, _ = validate.ID(p.ConsoleID)
	case console != "" && !strings.EqualFold(console, "all"):
		if id, ok := validate.ID(console); ok {
			f.ConsoleID = id
		} else {
			f.ConsoleLike = validate.Search(console)
		}
	}
	if f.ConsoleID == 0 && f.ConsoleLike == "" {
		switch {
		case ctype != "" && !strings.EqualFold(ctype, "all"):
			if id, ok := validate.ID(ctype); ok {
				f.ConsoleTypeID = id
			} else {
				f.ConsoleTypeLike = validate.Search(ctype)
			}
		case strings.EqualFold(console, "all"):
			f.AnyConsole = true
		}
	}
	return f
}

func pageWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// ListItems never fails: persistence errors are logged and an empty page
// is returned.
func (s *CatalogService) ListItems(ctx context.Context, p ListParams) ItemPage {
	page, limit := pageWindow(p.Page, p.Limit)
	empty := ItemPage{Items: []domain.ItemDetail{}, Pagination: Pagination{CurrentPage: page, Limit: limit}}
	f := BuildItemFilter(p)

	total, err := s.Items.Count(ctx, f)
	if err != nil {
		applog.Error(nil, "catalog.list.count.fail", err, nil)
		return empty
	}
	items, err := s.Items.List(ctx, f, limit, (page-1)*limit)
	if err != nil {
		applog.Error(nil, "catalog.list.fail", err, nil)
		return empty
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	return ItemPage{
		Items: items,
		Pagination: Pagination{
			CurrentPage: page,
			Limit:       limit,
			TotalItems:  total,
			TotalPages:  pages,
			HasNextPage: page < pages,
			HasPrevPage: page > 1,
		},
	}
}

func (s *CatalogService) GetItem(ctx context.Context, id int64) (domain.ItemDetail, error) {
	return s.Items.Get(ctx, id)
}

// FindByBarcode is an exact match on the stored code.
func (s *CatalogService) FindByBarcode(ctx context.Context, code string) (domain.ItemDetail, error) {
	code, ok := validate.Barcode(code)
	if !ok {
		return domain.ItemDetail{}, invalid("code", "invalid barcode")
	}
	return s.Items.FindByBarcode(ctx, code)
}

// ItemInput is the admin create/update body.
type ItemInput struct {
	Name                  string   `json:"name"`
	Description           *string  `json:"description"`
	Price                 *float64 `json:"price"`
	AcceptablePrice       *float64 `json:"acceptablePrice"`
	GoodPrice             *float64 `json:"goodPrice"`
	ConsoleOnlyPrice      *float64 `json:"consoleOnlyPrice"`
	ConsoleWithController *float64 `json:"consoleWithController"`
	CompleteConsolePrice  *float64 `json:"completeConsolePrice"`
	ImageURL              *string  `json:"imageUrl"`
	Barcode               *string  `json:"barcode"`
	CategoryID            int64    `json:"categoryId"`
	ConsoleID             int64    `json:"consoleId"`
}

// toItem validates the input against the catalog. A missing price is taken
// from the category's tiers.
func (s *CatalogService) toItem(ctx context.Context, in ItemInput) (domain.Item, error) {
	name, ok := validate.Name(in.Name, 200)
	if !ok {
		return domain.Item{}, invalid("name", "required, at most 200 characters")
	}
	for _, p := range []*float64{in.Price, in.AcceptablePrice, in.GoodPrice,
		in.ConsoleOnlyPrice, in.ConsoleWithController, in.CompleteConsolePrice} {
		if p != nil && (*p < 0 || math.IsNaN(*p) || math.IsInf(*p, 0)) {
			return domain.Item{}, invalid("price", "prices must be zero or more")
		}
	}
	cat, err := s.Cats.Get(ctx, in.CategoryID)
	if errors.Is(err, ErrNotFound) {
		return domain.Item{}, invalid("categoryId", "unknown category")
	} else if err != nil {
		return domain.Item{}, err
	}
	if _, err := s.Cons.GetConsole(ctx, in.ConsoleID); errors.Is(err, ErrNotFound) {
		return domain.Item{}, invalid("consoleId", "unknown console")
	} else if err != nil {
		return domain.Item{}, err
	}

	it := domain.Item{
		Name:                  name,
		Description:           trimmed(in.Description),
		AcceptablePrice:       in.AcceptablePrice,
		GoodPrice:             in.GoodPrice,
		ConsoleOnlyPrice:      in.ConsoleOnlyPrice,
		ConsoleWithController: in.ConsoleWithController,
		CompleteConsolePrice:  in.CompleteConsolePrice,
		ImageURL:              trimmed(in.ImageURL),
		CategoryID:            cat.ID,
		ConsoleID:             in.ConsoleID,
	}
	if in.Barcode != nil && strings.TrimSpace(*in.Barcode) != "" {
		code, ok := validate.Barcode(*in.Barcode)
		if !ok {
			return domain.Item{}, invalid("barcode", "at most 64 printable characters")
		}
		it.Barcode = &code
	}
	if in.Price != nil {
		it.Price = *in.Price
	}
	if it.Price <= 0 {
		p, ok := domain.TiersFor(cat.Name, it).DisplayPrice().Get()
		if !ok {
			return domain.Item{}, invalid("price", "a price or price tier is required")
		}
		it.Price = p
	}
	return it, nil
}

func (s *CatalogService) CreateItem(ctx context.Context, in ItemInput) (domain.ItemDetail, error) {
	it, err := s.toItem(ctx, in)
	if err != nil {
		return domain.ItemDetail{}, err
	}
	if err := s.Items.Create(ctx, &it); err != nil {
		return domain.ItemDetail{}, err
	}
	return s.Items.Get(ctx, it.ID)
}

func (s *CatalogService) UpdateItem(ctx context.Context, id int64, in ItemInput) (domain.ItemDetail, error) {
	cur, err := s.Items.Get(ctx, id)
	if err != nil {
		return domain.ItemDetail{}, err
	}
	it, err := s.toItem(ctx, in)
	if err != nil {
		return domain.ItemDetail{}, err
	}
	it.ID = id
	it.CreatedAt = cur.CreatedAt
	if err := s.Items.Update(ctx, &it); err != nil {
		return domain.ItemDetail{}, err
	}
	return s.Items.Get(ctx, id)
}

func (s *CatalogService) DeleteItem(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, id)
}

// ---------- taxonomy ----------

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.Cats.Get(ctx, id)
}

func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	return s.Cats.BySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name, ok := validate.Name(name, 100)
	if !ok {
		return domain.Category{}, invalid("name", "required, at most 100 characters")
	}
	if _, err := s.Cats.ByName(ctx, name); err == nil {
		return domain.Category{}, invalid("name", "category already exists")
	}
	return s.Cats.Create(ctx, name)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name string) (domain.Category, error) {
	name, ok := validate.Name(name, 100)
	if !ok {
		return domain.Category{}, invalid("name", "required, at most 100 characters")
	}
	if other, err := s.Cats.ByName(ctx, name); err == nil && other.ID != id {
		return domain.Category{}, invalid("name", "category already exists")
	}
	return s.Cats.Update(ctx, id, name)
}

// DeleteCategory removes the category together with its items.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		return repos.NewCategoryRepo(tx).Delete(ctx, id)
	})
}

func (s *CatalogService) ListConsoleTypes(ctx context.Context) ([]domain.ConsoleType, error) {
	return s.Cons.ListTypes(ctx)
}

func (s *CatalogService) CreateConsoleType(ctx context.Context, name string) (domain.ConsoleType, error) {
	name, ok := validate.Name(name, 100)
	if !ok {
		return domain.ConsoleType{}, invalid("name", "required, at most 100 characters")
	}
	if _, err := s.Cons.TypeByName(ctx, name); err == nil {
		return domain.ConsoleType{}, invalid("name", "console type already exists")
	}
	return s.Cons.CreateType(ctx, name)
}

// ConsolesByType lists the consoles of an existing type.
func (s *CatalogService) ConsolesByType(ctx context.Context, typeID int64) ([]domain.Console, error) {
	if _, err := s.Cons.GetType(ctx, typeID); err != nil {
		return nil, err
	}
	return s.Cons.ConsolesByType(ctx, typeID)
}

func (s *CatalogService) ListConsoles(ctx context.Context) ([]domain.Console, error) {
	return s.Cons.ListConsoles(ctx)
}

func (s *CatalogService) CreateConsole(ctx context.Context, name string, typeID int64) (domain.Console, error) {
	name, ok := validate.Name(name, 100)
	if !ok {
		return domain.Console{}, invalid("name", "required, at most 100 characters")
	}
	if _, err := s.Cons.GetType(ctx, typeID); errors.Is(err, ErrNotFound) {
		return domain.Console{}, invalid("consoleTypeId", "unknown console type")
	} else if err != nil {
		return domain.Console{}, err
	}
	if _, err := s.Cons.ConsoleByName(ctx, name); err == nil {
		return domain.Console{}, invalid("name", "console already exists")
	}
	return s.Cons.CreateConsole(ctx, name, typeID)
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
