package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/ingest"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

// MaintenanceService holds the one-off catalog repair jobs.
type MaintenanceService struct {
	DB    *sqlx.DB
	Items *repos.ItemRepo
}

func NewMaintenanceService(db *sqlx.DB) *MaintenanceService {
	return &MaintenanceService{DB: db, Items: repos.NewItemRepo(db)}
}

// NewGame is one entry of an add-games batch.
type NewGame struct {
	Name          string   `json:"name"`
	Console       string   `json:"console"`
	ConsoleType   string   `json:"consoleType"`
	CompleteInBox *float64 `json:"completeInBox"`
	BoxAndGame    *float64 `json:"boxAndGame"`
	DiscOnly      *float64 `json:"discOnly"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"imageUrl"`
}

type AddGamesResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// AddGames creates Games items. Entries that already exist for the console
// are skipped; a bad entry is reported and the batch continues.
func (s *MaintenanceService) AddGames(ctx context.Context, games []NewGame) (AddGamesResult, error) {
	res := AddGamesResult{Errors: []string{}}
	for i, g := range games {
		name, ok := validate.Name(g.Name, 200)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("game %d: name is required", i+1))
			continue
		}
		console, ok := validate.Name(g.Console, 100)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("game %d (%s): console is required", i+1, name))
			continue
		}
		ctype := strings.TrimSpace(g.ConsoleType)
		if ctype == "" {
			ctype = ingest.ConsoleTypeRules.Match(console, domain.ConsoleTypeOther)
		}
		tiers := domain.GameTiers{
			CompleteInBox: domain.Opt(g.CompleteInBox),
			BoxAndGame:    domain.Opt(g.BoxAndGame),
			DiscOnly:      domain.Opt(g.DiscOnly),
		}

		var added bool
		err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
			cons := repos.NewConsoleRepo(tx)
			items := repos.NewItemRepo(tx)
			typ, err := cons.FindOrCreateType(ctx, ctype)
			if err != nil {
				return err
			}
			co, err := cons.FindOrCreateConsole(ctx, console, typ.ID)
			if err != nil {
				return err
			}
			cat, err := repos.NewCategoryRepo(tx).FindOrCreate(ctx, domain.CategoryGames)
			if err != nil {
				return err
			}
			if _, err := items.FindByKey(ctx, name, co.ID, cat.ID); err == nil {
				return nil
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}

			it := domain.Item{
				Name:        name,
				Description: trimmed(g.Description),
				ImageURL:    trimmed(g.ImageURL),
				CategoryID:  cat.ID,
				ConsoleID:   co.ID,
			}
			if err := it.ApplyTiers(tiers); err != nil {
				return err
			}
			added = true
			return items.Create(ctx, &it)
		})
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("game %d (%s): %v", i+1, name, err))
		case added:
			res.Added++
		default:
			res.Skipped++
		}
	}
	applog.Audit(nil, "maintenance.add_games", map[string]any{"added": res.Added, "skipped": res.Skipped})
	return res, nil
}

// AffectedItem describes an item a maintenance job deleted or moved.
type AffectedItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Console string `json:"console"`
	Tiers   int    `json:"tiers,omitempty"`
}

type DedupeResult struct {
	Groups  int            `json:"groups"`
	Deleted int            `json:"deleted"`
	DryRun  bool           `json:"dryRun"`
	Items   []AffectedItem `json:"items"`
}

func dedupeKey(d domain.ItemDetail) string {
	return strings.ToLower(strings.TrimSpace(d.Name)) + "|" + strconv.FormatInt(d.ConsoleID, 10)
}

// DeleteDuplicateGames groups Games by name and console. Within a group the
// entries with fewer price tiers than the fullest one are deleted.
func (s *MaintenanceService) DeleteDuplicateGames(ctx context.Context, dryRun bool) (DedupeResult, error) {
	res := DedupeResult{DryRun: dryRun, Items: []AffectedItem{}}
	games, err := s.Items.ListByCategoryName(ctx, domain.CategoryGames)
	if err != nil {
		return res, err
	}

	for _, group := range lo.GroupBy(games, dedupeKey) {
		if len(group) < 2 {
			continue
		}
		counts := lo.Map(group, func(d domain.ItemDetail, _ int) int { return d.Tiers().Count() })
		fullest := lo.Max(counts)
		losers := lo.Filter(group, func(d domain.ItemDetail, i int) bool { return counts[i] < fullest })
		if len(losers) == 0 {
			continue
		}
		res.Groups++
		for _, d := range losers {
			res.Items = append(res.Items, AffectedItem{ID: d.ID, Name: d.Name, Console: d.ConsoleName, Tiers: d.Tiers().Count()})
		}
	}

	if !dryRun && len(res.Items) > 0 {
		ids := lo.Map(res.Items, func(a AffectedItem, _ int) int64 { return a.ID })
		err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
			n, err := repos.NewItemRepo(tx).DeleteIDs(ctx, ids)
			res.Deleted = int(n)
			return err
		})
		if err != nil {
			return res, err
		}
	}
	applog.Audit(nil, "maintenance.dedupe_games", map[string]any{"groups": res.Groups, "deleted": res.Deleted, "dry_run": dryRun})
	return res, nil
}

type DeleteResult struct {
	Deleted int            `json:"deleted"`
	Items   []AffectedItem `json:"items"`
}

// DeleteOtherConsoleGames removes Games filed under the catch-all console.
func (s *MaintenanceService) DeleteOtherConsoleGames(ctx context.Context) (DeleteResult, error) {
	res := DeleteResult{Items: []AffectedItem{}}
	games, err := s.Items.ListByCategoryName(ctx, domain.CategoryGames)
	if err != nil {
		return res, err
	}
	other := lo.Filter(games, func(d domain.ItemDetail, _ int) bool {
		return strings.EqualFold(d.ConsoleName, ingest.FallbackConsole)
	})
	if len(other) == 0 {
		return res, nil
	}
	res.Items = lo.Map(other, func(d domain.ItemDetail, _ int) AffectedItem {
		return AffectedItem{ID: d.ID, Name: d.Name, Console: d.ConsoleName}
	})
	n, err := s.Items.DeleteIDs(ctx, lo.Map(other, func(d domain.ItemDetail, _ int) int64 { return d.ID }))
	if err != nil {
		return res, err
	}
	res.Deleted = int(n)
	applog.Audit(nil, "maintenance.delete_other_console_games", map[string]any{"deleted": res.Deleted})
	return res, nil
}

type MigrateResult struct {
	Moved int            `json:"moved"`
	Items []AffectedItem `json:"items"`
}

// MigrateHandhelds moves handheld systems filed under Consoles into the
// Handhelds category, converting console tiers to condition tiers.
func (s *MaintenanceService) MigrateHandhelds(ctx context.Context) (MigrateResult, error) {
	res := MigrateResult{Items: []AffectedItem{}}
	consoles, err := s.Items.ListByCategoryName(ctx, domain.CategoryConsoles)
	if err != nil {
		return res, err
	}
	handhelds := lo.Filter(consoles, func(d domain.ItemDetail, _ int) bool {
		return ingest.HandheldNameRules.Match(d.Name, "") != ""
	})
	if len(handhelds) == 0 {
		return res, nil
	}

	err = repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		cons := repos.NewConsoleRepo(tx)
		items := repos.NewItemRepo(tx)
		cat, err := repos.NewCategoryRepo(tx).FindOrCreate(ctx, domain.CategoryHandhelds)
		if err != nil {
			return err
		}
		other, err := cons.FindOrCreateType(ctx, domain.ConsoleTypeOther)
		if err != nil {
			return err
		}
		for _, d := range handhelds {
			co, err := cons.FindOrCreateConsole(ctx, ingest.HandheldNameRules.Match(d.Name, ingest.FallbackHandheld), other.ID)
			if err != nil {
				return err
			}
			it := d.Item
			if err := it.ApplyTiers(handheldTiers(d)); err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			it.CategoryID = cat.ID
			it.ConsoleID = co.ID
			if err := items.Update(ctx, &it); err != nil {
				return err
			}
			res.Items = append(res.Items, AffectedItem{ID: d.ID, Name: d.Name, Console: co.Name})
		}
		return nil
	})
	if err != nil {
		return MigrateResult{Items: []AffectedItem{}}, err
	}
	res.Moved = len(res.Items)
	applog.Audit(nil, "maintenance.migrate_handhelds", map[string]any{"moved": res.Moved})
	return res, nil
}

// handheldTiers: good is complete or with-controller, acceptable is console
// only. An item without console tiers keeps its price as good.
func handheldTiers(d domain.ItemDetail) domain.ConditionTiers {
	ct, _ := d.Tiers().(domain.ConsoleTiers)
	good := domain.FirstPositive(ct.Complete, ct.WithController)
	acceptable := domain.FirstPositive(ct.Only)
	if good.IsAbsent() && acceptable.IsAbsent() {
		good = domain.FirstPositive(mo.Some(d.Price))
	}
	return domain.ConditionTiers{Good: good, Acceptable: acceptable}
}
