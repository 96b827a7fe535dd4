package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

type QuoteRepo struct{ db *sqlx.DB }

func NewQuoteRepo(db *sqlx.DB) *QuoteRepo { return &QuoteRepo{db: db} }

// Create inserts the quote header and its lines in one transaction.
func (r *QuoteRepo) Create(ctx context.Context, q domain.Quote, lines []domain.QuoteItem) error {
	return InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
		  INSERT INTO quotes(id, name, email, phone, message, total, status, created_at)
		  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		`), q.ID, q.Name, q.Email, q.Phone, q.Message, q.Total, q.Status, q.CreatedAt); err != nil {
			return fmt.Errorf("insert quote: %w", err)
		}
		for _, l := range lines {
			if _, err := tx.ExecContext(ctx, tx.Rebind(`
			  INSERT INTO quote_items(quote_id, item_id, name, condition, qty, price)
			  VALUES(?, ?, ?, ?, ?, ?)
			`), q.ID, l.ItemID, l.Name, l.Condition, l.Qty, l.Price); err != nil {
				return fmt.Errorf("insert quote item: %w", err)
			}
		}
		return nil
	})
}

// List returns the newest quotes first.
func (r *QuoteRepo) List(ctx context.Context, limit int) ([]domain.Quote, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Quote{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
		SELECT id, name, email, phone, message, total, status, created_at
		FROM quotes
		ORDER BY created_at DESC
		LIMIT ?
	`), limit)
	return out, err
}

func (r *QuoteRepo) Get(ctx context.Context, id string) (domain.Quote, []domain.QuoteItem, error) {
	var q domain.Quote
	err := sqlx.GetContext(ctx, r.db, &q, r.db.Rebind(`
		SELECT id, name, email, phone, message, total, status, created_at
		FROM quotes WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return q, nil, ErrNotFound
	}
	if err != nil {
		return q, nil, err
	}

	lines := []domain.QuoteItem{}
	if err := sqlx.SelectContext(ctx, r.db, &lines, r.db.Rebind(`
		SELECT quote_id, item_id, name, condition, qty, price
		FROM quote_items
		WHERE quote_id = ?
		ORDER BY name
	`), id); err != nil {
		return q, nil, err
	}
	return q, lines, nil
}

func (r *QuoteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE quotes SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
