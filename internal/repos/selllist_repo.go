package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

// SellListRepo persists a visitor's sell list keyed by their session id.
// Save replaces the whole list.
type SellListRepo struct{ db *sqlx.DB }

func NewSellListRepo(db *sqlx.DB) *SellListRepo { return &SellListRepo{db: db} }

func (r *SellListRepo) Load(ctx context.Context, sid string) ([]domain.SellListEntry, error) {
	out := []domain.SellListEntry{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT sli.item_id, i.name, sli.condition, sli.price, sli.qty
	  FROM sell_list_items sli JOIN items i ON i.id = sli.item_id
	  WHERE sli.session_id = ?
	  ORDER BY i.name, sli.condition
	`), sid)
	if err != nil {
		return nil, fmt.Errorf("load sell list: %w", err)
	}
	return out, nil
}

func (r *SellListRepo) Save(ctx context.Context, sid string, entries []domain.SellListEntry) error {
	return InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
		  INSERT INTO sell_lists(session_id, updated_at) VALUES(?, ?)
		  ON CONFLICT(session_id) DO UPDATE SET updated_at = excluded.updated_at
		`), sid, Now()); err != nil {
			return fmt.Errorf("upsert sell list: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM sell_list_items WHERE session_id = ?`), sid); err != nil {
			return fmt.Errorf("clear sell list items: %w", err)
		}
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, tx.Rebind(`
			  INSERT INTO sell_list_items(session_id, item_id, condition, price, qty)
			  VALUES(?, ?, ?, ?, ?)
			`), sid, e.ItemID, e.Condition, e.Price, e.Qty); err != nil {
				return fmt.Errorf("insert sell list item: %w", err)
			}
		}
		return nil
	})
}

func (r *SellListRepo) Clear(ctx context.Context, sid string) error {
	// items go with the list through the cascade
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sell_lists WHERE session_id = ?`), sid)
	return err
}
