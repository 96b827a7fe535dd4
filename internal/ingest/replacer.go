package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

// Default price sheet file names inside the CSV directory.
const (
	ConsoleSheetFile    = "console-prices.csv"
	ControllerSheetFile = "controller-prices.csv"
	HandheldSheetFile   = "handheld-prices.csv"
)

// Sources are the three price sheets a full replace is built from.
type Sources struct {
	Consoles    io.Reader
	Controllers io.Reader
	Handhelds   io.Reader
}

type ReplaceResult struct {
	Consoles    int      `json:"consoles"`
	Controllers int      `json:"controllers"`
	Handhelds   int      `json:"handhelds"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors"`
}

// Replacer rebuilds the whole catalog from the price sheets. Every sheet is
// parsed before anything is deleted and the swap runs in one transaction, so
// a failure leaves the previous catalog in place.
type Replacer struct {
	DB *sqlx.DB
}

func NewReplacer(db *sqlx.DB) *Replacer { return &Replacer{DB: db} }

type stagedItem struct {
	kind        SheetKind
	name        string
	description *string
	sku         *string
	tax         Taxonomy
	tiers       domain.Tiers
}

// ReplaceDir opens the three default sheets from dir.
func (rp *Replacer) ReplaceDir(ctx context.Context, dir string) (ReplaceResult, error) {
	var files []*os.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	open := func(name string) (io.Reader, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSheet, err)
		}
		files = append(files, f)
		return f, nil
	}

	var src Sources
	var err error
	if src.Consoles, err = open(ConsoleSheetFile); err != nil {
		return ReplaceResult{}, err
	}
	if src.Controllers, err = open(ControllerSheetFile); err != nil {
		return ReplaceResult{}, err
	}
	if src.Handhelds, err = open(HandheldSheetFile); err != nil {
		return ReplaceResult{}, err
	}
	return rp.Replace(ctx, src)
}

func (rp *Replacer) Replace(ctx context.Context, src Sources) (ReplaceResult, error) {
	res := ReplaceResult{Errors: []string{}}

	// phase 1: stage
	var staged []stagedItem
	for _, sh := range []struct {
		kind SheetKind
		file string
		r    io.Reader
	}{
		{SheetConsoles, ConsoleSheetFile, src.Consoles},
		{SheetControllers, ControllerSheetFile, src.Controllers},
		{SheetHandhelds, HandheldSheetFile, src.Handhelds},
	} {
		if sh.r == nil {
			return res, fmt.Errorf("%w: %s not provided", ErrBadSheet, sh.file)
		}
		items, err := stageSheet(sh.kind, sh.file, sh.r, &res)
		if err != nil {
			return res, fmt.Errorf("%s: %w", sh.file, err)
		}
		staged = append(staged, items...)
	}

	// phase 2: swap
	var counts ReplaceResult
	err := repos.InTx(ctx, rp.DB, func(tx *sqlx.Tx) error {
		counts = ReplaceResult{}
		if err := wipeCatalog(ctx, tx); err != nil {
			return err
		}
		if err := ensureBaseTaxonomy(ctx, tx); err != nil {
			return err
		}
		for _, st := range staged {
			if err := insertStaged(ctx, tx, st); err != nil {
				return fmt.Errorf("insert %q: %w", st.name, err)
			}
			switch st.kind {
			case SheetConsoles:
				counts.Consoles++
			case SheetControllers:
				counts.Controllers++
			case SheetHandhelds:
				counts.Handhelds++
			}
		}
		return nil
	})
	if err != nil {
		applog.Error(nil, "replace.rollback", err, nil)
		return res, fmt.Errorf("replace catalog: %w", err)
	}

	res.Consoles, res.Controllers, res.Handhelds = counts.Consoles, counts.Controllers, counts.Handhelds
	applog.Audit(nil, "replace.done", map[string]any{
		"consoles": res.Consoles, "controllers": res.Controllers, "handhelds": res.Handhelds,
		"skipped": res.Skipped, "errors": len(res.Errors),
	})
	return res, nil
}

func stageSheet(kind SheetKind, file string, r io.Reader, res *ReplaceResult) ([]stagedItem, error) {
	s, err := readSheet(r)
	if err != nil {
		return nil, err
	}

	var acceptableCol string
	switch kind {
	case SheetConsoles:
		err = s.require("Name", "Console Only Price", "Console With Controller", "Complete Console")
	case SheetControllers:
		err = s.require("Name", "Acceptable Condition", "Good Condition")
		acceptableCol = "Acceptable Condition"
	case SheetHandhelds:
		err = s.require("Name", "Good Condition")
		col, ok := s.firstCol("Accecptable Condition", "Acceptable Condition")
		if !ok && err == nil {
			err = s.require("Acceptable Condition")
		}
		acceptableCol = col
	}
	if err != nil {
		return nil, err
	}

	var out []stagedItem
	for i, rec := range s.rows {
		line := i + 2
		if blank(rec) {
			continue
		}
		name := s.cell(rec, "Name")
		if name == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%s row %d: name is required", file, line))
			continue
		}

		var tiers domain.Tiers
		if kind == SheetConsoles {
			tiers = domain.ConsoleTiers{
				Complete:       ParsePrice(s.cell(rec, "Complete Console")),
				WithController: ParsePrice(s.cell(rec, "Console With Controller")),
				Only:           ParsePrice(s.cell(rec, "Console Only Price")),
			}
		} else {
			tiers = domain.ConditionTiers{
				Good:       ParsePrice(s.cell(rec, "Good Condition")),
				Acceptable: ParsePrice(s.cell(rec, acceptableCol)),
			}
		}
		if tiers.DisplayPrice().IsAbsent() {
			res.Skipped++
			continue
		}

		sku := optional(s.cell(rec, "SKU"))
		if sku != nil {
			if _, ok := validate.Barcode(*sku); !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("%s row %d: SKU ignored, at most 64 printable characters", file, line))
				sku = nil
			}
		}
		out = append(out, stagedItem{
			kind:        kind,
			name:        name,
			description: optional(s.cell(rec, "Special Notes")),
			sku:         sku,
			tax:         Classify(kind, name),
			tiers:       tiers,
		})
	}
	return out, nil
}

// wipeCatalog deletes in foreign key order. Sell list lines go with their
// items through the cascade.
func wipeCatalog(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := repos.NewItemRepo(tx).DeleteAll(ctx); err != nil {
		return err
	}
	cons := repos.NewConsoleRepo(tx)
	if err := cons.DeleteAllConsoles(ctx); err != nil {
		return fmt.Errorf("delete consoles: %w", err)
	}
	if err := cons.DeleteAllTypes(ctx); err != nil {
		return fmt.Errorf("delete console types: %w", err)
	}
	if err := repos.NewCategoryRepo(tx).DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}

// ensureBaseTaxonomy recreates the fixed categories and console families so
// the catalog navigation survives a replace.
func ensureBaseTaxonomy(ctx context.Context, tx *sqlx.Tx) error {
	cats := repos.NewCategoryRepo(tx)
	for _, name := range []string{
		domain.CategoryConsoles, domain.CategoryGames, domain.CategoryControllers,
		domain.CategoryAccessories, domain.CategoryHandhelds,
	} {
		if _, err := cats.FindOrCreate(ctx, name); err != nil {
			return err
		}
	}
	cons := repos.NewConsoleRepo(tx)
	for _, name := range []string{
		domain.ConsoleTypeNintendo, domain.ConsoleTypePlayStation,
		domain.ConsoleTypeXbox, domain.ConsoleTypeOther,
	} {
		if _, err := cons.FindOrCreateType(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func insertStaged(ctx context.Context, tx *sqlx.Tx, st stagedItem) error {
	cons := repos.NewConsoleRepo(tx)
	typ, err := cons.FindOrCreateType(ctx, st.tax.ConsoleType)
	if err != nil {
		return err
	}
	co, err := cons.FindOrCreateConsole(ctx, st.tax.Console, typ.ID)
	if err != nil {
		return err
	}
	cat, err := repos.NewCategoryRepo(tx).FindOrCreate(ctx, st.tax.Category)
	if err != nil {
		return err
	}

	it := domain.Item{
		Name:        st.name,
		Description: st.description,
		Barcode:     st.sku,
		CategoryID:  cat.ID,
		ConsoleID:   co.ID,
	}
	if err := it.ApplyTiers(st.tiers); err != nil {
		return err
	}
	return repos.NewItemRepo(tx).Create(ctx, &it)
}
