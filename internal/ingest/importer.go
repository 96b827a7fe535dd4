package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

var importRequired = []string{"name", "price", "consoleType", "console", "category"}

type ImportOptions struct {
	UpdateExisting bool
	ClearExisting  bool
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Importer applies a catalog CSV on top of the existing catalog.
type Importer struct {
	DB *sqlx.DB
}

func NewImporter(db *sqlx.DB) *Importer { return &Importer{DB: db} }

type importRow struct {
	line        int
	name        string
	price       float64
	consoleType string
	console     string
	category    string
	description *string
	imageURL    *string
	barcode     *string
}

// Import reads the whole file before touching the database; a bad header
// aborts with ErrBadSheet. Each valid row is applied in its own transaction.
func (im *Importer) Import(ctx context.Context, r io.Reader, opts ImportOptions) (ImportResult, error) {
	res := ImportResult{Errors: []string{}, Warnings: []string{}}
	s, err := readSheet(r)
	if err != nil {
		return res, err
	}
	if err := s.require(importRequired...); err != nil {
		return res, err
	}

	var rows []importRow
	for i, rec := range s.rows {
		line := i + 2 // header is row 1
		if blank(rec) {
			continue
		}
		row, problems := parseImportRow(s, rec, line)
		if len(problems) > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %s", line, strings.Join(problems, "; ")))
			continue
		}
		rows = append(rows, row)
	}

	runID := uuid.NewString()
	if opts.ClearExisting {
		n, err := repos.NewItemRepo(im.DB).DeleteAll(ctx)
		if err != nil {
			return res, fmt.Errorf("clear items: %w", err)
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf("cleared %d existing items before import", n))
		applog.Audit(nil, "import.clear", map[string]any{"run": runID, "deleted": n})
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := im.applyRow(ctx, row, opts, &res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", row.line, err))
		}
	}

	applog.Info(nil, "import.done", map[string]any{
		"run": runID, "imported": res.Imported, "updated": res.Updated,
		"skipped": res.Skipped, "errors": len(res.Errors),
	})
	return res, nil
}

func parseImportRow(s *sheet, rec []string, line int) (importRow, []string) {
	row := importRow{
		line:        line,
		name:        s.cell(rec, "name"),
		consoleType: s.cell(rec, "consoleType"),
		console:     s.cell(rec, "console"),
		category:    s.cell(rec, "category"),
		description: optional(s.cell(rec, "description")),
		imageURL:    optional(s.cell(rec, "imageUrl")),
		barcode:     optional(s.cell(rec, "barcode")),
	}
	var problems []string
	if row.name == "" {
		problems = append(problems, "name is required")
	}
	if p, ok := ParsePrice(s.cell(rec, "price")).Get(); !ok || p <= 0 {
		problems = append(problems, "price must be a positive number")
	} else {
		row.price = p
	}
	if row.consoleType == "" {
		problems = append(problems, "consoleType is required")
	}
	if row.console == "" {
		problems = append(problems, "console is required")
	}
	if row.category == "" {
		problems = append(problems, "category is required")
	}
	if row.barcode != nil {
		if _, ok := validate.Barcode(*row.barcode); !ok {
			problems = append(problems, "barcode must be at most 64 printable characters")
		}
	}
	return row, problems
}

func (im *Importer) applyRow(ctx context.Context, row importRow, opts ImportOptions, res *ImportResult) error {
	var imported, updated, skipped bool
	err := repos.InTx(ctx, im.DB, func(tx *sqlx.Tx) error {
		cons := repos.NewConsoleRepo(tx)
		items := repos.NewItemRepo(tx)

		typ, err := cons.FindOrCreateType(ctx, row.consoleType)
		if err != nil {
			return err
		}
		co, err := cons.FindOrCreateConsole(ctx, row.console, typ.ID)
		if err != nil {
			return err
		}
		cat, err := repos.NewCategoryRepo(tx).FindOrCreate(ctx, row.category)
		if err != nil {
			return err
		}

		existing, err := items.FindByKey(ctx, row.name, co.ID, cat.ID)
		switch {
		case err == nil && opts.UpdateExisting:
			updated = true
			return items.UpdatePricing(ctx, existing.ID, row.description, row.price, row.imageURL)
		case err == nil:
			skipped = true
			return nil
		case !errors.Is(err, repos.ErrNotFound):
			return err
		}

		it := domain.Item{
			Name:        row.name,
			Description: row.description,
			Price:       row.price,
			ImageURL:    row.imageURL,
			Barcode:     row.barcode,
			CategoryID:  cat.ID,
			ConsoleID:   co.ID,
		}
		imported = true
		return items.Create(ctx, &it)
	})
	if err != nil {
		return err
	}
	switch {
	case imported:
		res.Imported++
	case updated:
		res.Updated++
	case skipped:
		res.Skipped++
		res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: %q already exists, skipped", row.line, row.name))
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
