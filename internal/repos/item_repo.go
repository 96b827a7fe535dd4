package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

type ItemRepo struct{ db sqlx.ExtContext }

func NewItemRepo(db sqlx.ExtContext) *ItemRepo { return &ItemRepo{db: db} }

const itemDetailSelect = `
  SELECT
    i.id, i.name, i.description, i.price,
    i.acceptable_price, i.good_price,
    i.console_only_price, i.console_with_controller, i.complete_console_price,
    i.image_url, i.barcode, i.category_id, i.console_id,
    i.created_at, i.updated_at,
    c.name  AS category_name,
    co.name AS console_name,
    ct.id   AS console_type_id,
    ct.name AS console_type_name
  FROM items i
  JOIN categories c     ON c.id = i.category_id
  JOIN consoles co      ON co.id = i.console_id
  JOIN console_types ct ON ct.id = co.console_type_id`

// List returns one page of items matching f, newest first.
func (r *ItemRepo) List(ctx context.Context, f ItemFilter, limit, offset int) ([]domain.ItemDetail, error) {
	where, args := f.Where()
	q := itemDetailSelect + `
  WHERE ` + where + `
  ORDER BY i.created_at DESC, i.name ASC
  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.ItemDetail{}
	if err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

func (r *ItemRepo) Count(ctx context.Context, f ItemFilter) (int, error) {
	where, args := f.Where()
	q := `
  SELECT COUNT(*)
  FROM items i
  JOIN categories c     ON c.id = i.category_id
  JOIN consoles co      ON co.id = i.console_id
  JOIN console_types ct ON ct.id = co.console_type_id
  WHERE ` + where
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(q), args...); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *ItemRepo) Get(ctx context.Context, id int64) (domain.ItemDetail, error) {
	var d domain.ItemDetail
	err := sqlx.GetContext(ctx, r.db, &d, r.db.Rebind(itemDetailSelect+` WHERE i.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

// FindByBarcode returns the lowest id item carrying exactly this barcode.
func (r *ItemRepo) FindByBarcode(ctx context.Context, code string) (domain.ItemDetail, error) {
	var d domain.ItemDetail
	err := sqlx.GetContext(ctx, r.db, &d,
		r.db.Rebind(itemDetailSelect+` WHERE i.barcode = ? ORDER BY i.id LIMIT 1`), code)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

// FindByKey matches the importer's natural key (name, console, category).
func (r *ItemRepo) FindByKey(ctx context.Context, name string, consoleID, categoryID int64) (domain.Item, error) {
	var it domain.Item
	err := sqlx.GetContext(ctx, r.db, &it, r.db.Rebind(`
  SELECT `+itemCols+`
  FROM items
  WHERE name = ? AND console_id = ? AND category_id = ?
  ORDER BY id LIMIT 1`), name, consoleID, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return it, ErrNotFound
	}
	return it, err
}

// ListByCategoryName returns every item of a category with its joined names,
// in id order. Used by the batch maintenance operations.
func (r *ItemRepo) ListByCategoryName(ctx context.Context, category string) ([]domain.ItemDetail, error) {
	out := []domain.ItemDetail{}
	err := sqlx.SelectContext(ctx, r.db, &out,
		r.db.Rebind(itemDetailSelect+` WHERE c.name = ? ORDER BY i.id`), category)
	return out, err
}

const itemCols = `id, name, description, price, acceptable_price, good_price,
    console_only_price, console_with_controller, complete_console_price,
    image_url, barcode, category_id, console_id, created_at, updated_at`

// Create inserts the item and fills in its id and timestamps. A preset
// CreatedAt is kept.
func (r *ItemRepo) Create(ctx context.Context, it *domain.Item) error {
	now := Now()
	if it.CreatedAt == "" {
		it.CreatedAt = now
	}
	it.UpdatedAt = now
	err := sqlx.GetContext(ctx, r.db, &it.ID, r.db.Rebind(`
  INSERT INTO items
    (name, description, price, acceptable_price, good_price,
     console_only_price, console_with_controller, complete_console_price,
     image_url, barcode, category_id, console_id, created_at, updated_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
  RETURNING id`),
		it.Name, it.Description, it.Price, it.AcceptablePrice, it.GoodPrice,
		it.ConsoleOnlyPrice, it.ConsoleWithController, it.CompleteConsolePrice,
		it.ImageURL, it.Barcode, it.CategoryID, it.ConsoleID, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update rewrites every mutable column of an existing item.
func (r *ItemRepo) Update(ctx context.Context, it *domain.Item) error {
	it.UpdatedAt = Now()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE items SET
    name = ?, description = ?, price = ?, acceptable_price = ?, good_price = ?,
    console_only_price = ?, console_with_controller = ?, complete_console_price = ?,
    image_url = ?, barcode = ?, category_id = ?, console_id = ?, updated_at = ?
  WHERE id = ?`),
		it.Name, it.Description, it.Price, it.AcceptablePrice, it.GoodPrice,
		it.ConsoleOnlyPrice, it.ConsoleWithController, it.CompleteConsolePrice,
		it.ImageURL, it.Barcode, it.CategoryID, it.ConsoleID, it.UpdatedAt, it.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePricing is the importer's update: description, price and image only.
func (r *ItemRepo) UpdatePricing(ctx context.Context, id int64, description *string, price float64, imageURL *string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE items SET description = ?, price = ?, image_url = ?, updated_at = ?
  WHERE id = ?`), description, price, imageURL, Now(), id)
	if err != nil {
		return fmt.Errorf("update item pricing: %w", err)
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ItemRepo) DeleteIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q, args, err := sqlx.In(`DELETE FROM items WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	return res.RowsAffected()
}

func (r *ItemRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items`)
	if err != nil {
		return 0, fmt.Errorf("delete all items: %w", err)
	}
	return res.RowsAffected()
}
