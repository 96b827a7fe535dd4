package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

const maxSellListLines = 100

// defaultCondition prices a line at the item's display price.
const defaultCondition = "default"

// SellListStore persists one visitor's list; repos.SellListRepo implements it.
type SellListStore interface {
	Load(ctx context.Context, sid string) ([]domain.SellListEntry, error)
	Save(ctx context.Context, sid string, entries []domain.SellListEntry) error
	Clear(ctx context.Context, sid string) error
}

type SellListService struct {
	Store SellListStore
	Items *repos.ItemRepo
}

func NewSellListService(store SellListStore, items *repos.ItemRepo) *SellListService {
	return &SellListService{Store: store, Items: items}
}

// SellListLine is what the client sends; prices are never taken from it.
type SellListLine struct {
	ItemID    int64  `json:"itemId"`
	Condition string `json:"condition"`
	Qty       int    `json:"quantity"`
}

type SellListView struct {
	Items []domain.SellListEntry `json:"items"`
	Total float64                `json:"total"`
}

func (s *SellListService) View(ctx context.Context, sid string) (SellListView, error) {
	entries, err := s.Store.Load(ctx, sid)
	if err != nil {
		return SellListView{}, err
	}
	return SellListView{Items: entries, Total: sellListTotal(entries)}, nil
}

// Replace validates the lines, prices them from the items' current tiers
// and stores the result in place of the previous list.
func (s *SellListService) Replace(ctx context.Context, sid string, lines []SellListLine) (SellListView, error) {
	if len(lines) > maxSellListLines {
		return SellListView{}, invalid("items", fmt.Sprintf("at most %d lines", maxSellListLines))
	}
	type key struct {
		id   int64
		cond string
	}
	merged := map[key]int{}
	var order []key
	for _, l := range lines {
		cond := strings.ToLower(strings.TrimSpace(l.Condition))
		if cond == "" {
			cond = defaultCondition
		}
		k := key{l.ItemID, cond}
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] += l.Qty
	}

	entries := make([]domain.SellListEntry, 0, len(order))
	for _, k := range order {
		d, err := s.Items.Get(ctx, k.id)
		if errors.Is(err, ErrNotFound) {
			return SellListView{}, invalid("itemId", fmt.Sprintf("item %d does not exist", k.id))
		} else if err != nil {
			return SellListView{}, err
		}
		lookup := k.cond
		if lookup == defaultCondition {
			lookup = ""
		}
		price, ok := d.Tiers().Price(lookup).Get()
		if !ok {
			return SellListView{}, invalid("condition", fmt.Sprintf("%q is not offered for %s", k.cond, d.Name))
		}
		entries = append(entries, domain.SellListEntry{
			ItemID:    d.ID,
			Name:      d.Name,
			Condition: k.cond,
			Price:     price,
			Qty:       validate.Qty(merged[k]),
		})
	}

	if err := s.Store.Save(ctx, sid, entries); err != nil {
		return SellListView{}, err
	}
	return s.View(ctx, sid)
}

func (s *SellListService) Clear(ctx context.Context, sid string) error {
	return s.Store.Clear(ctx, sid)
}

func sellListTotal(entries []domain.SellListEntry) float64 {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.Price).Mul(decimal.NewFromInt(int64(e.Qty))))
	}
	return total.Round(2).InexactFloat64()
}
